package html

import "errors"

// ErrNoControlTemplate is returned when a control's type has no registered
// template.
var ErrNoControlTemplate = errors.New("html: no template for control type")
