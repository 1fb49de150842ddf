package loader

import "errors"

var (
	// ErrEmptyDocument is returned for blank payloads.
	ErrEmptyDocument = errors.New("loader: document is empty")
	// ErrNotFormMeta is returned when a payload parses but does not have the
	// shape of a form metadata tree.
	ErrNotFormMeta = errors.New("loader: document is not form metadata")
	// ErrHTTPDisabled is returned for URL sources when no HTTP client is
	// configured.
	ErrHTTPDisabled = errors.New("loader: http support disabled")
)
