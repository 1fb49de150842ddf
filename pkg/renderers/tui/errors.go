package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (for example Ctrl+C) or
	// declined the final submit confirmation.
	ErrAborted = errors.New("tui: aborted")
	// ErrUnsupportedFormat is returned for unknown output formats.
	ErrUnsupportedFormat = errors.New("tui: unsupported output format")
	// ErrNoOptions is returned when a required select or multiselect has
	// nothing to choose from.
	ErrNoOptions = errors.New("tui: required control has no options")
)
