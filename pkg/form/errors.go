package form

import "errors"

var (
	// ErrUnknownControlType is returned when no evaluator is registered for a
	// control's type.
	ErrUnknownControlType = errors.New("form: unknown control type")
	// ErrOutOfRange is returned when a position does not address a node in the
	// current tree.
	ErrOutOfRange = errors.New("form: position out of range")
	// ErrControlNotFound is returned when a control name is not in the tree.
	ErrControlNotFound = errors.New("form: control not found")
)
