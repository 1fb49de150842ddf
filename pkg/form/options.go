package form

import (
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/model"
)

const (
	DefaultID                = "d-form"
	DefaultSubmitText        = "Submit"
	DefaultRequiredText      = "required"
	DefaultSelectText        = "Select..."
	DefaultDocumentationText = "Documentation"
)

// Config holds the presentation settings propagated unchanged to every
// section, group and control.
type Config struct {
	ID                  string `json:"id"`
	IncludeSubmitButton bool   `json:"includeSubmitButton"`
	SubmitText          string `json:"submitText"`
	RequiredText        string `json:"requiredText"`
	SelectText          string `json:"selectText"`
	DocumentationText   string `json:"documentationText"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		ID:                  DefaultID,
		IncludeSubmitButton: true,
		SubmitText:          DefaultSubmitText,
		RequiredText:        DefaultRequiredText,
		SelectText:          DefaultSelectText,
		DocumentationText:   DefaultDocumentationText,
	}
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = DefaultID
	}
	if c.SubmitText == "" {
		c.SubmitText = DefaultSubmitText
	}
	if c.RequiredText == "" {
		c.RequiredText = DefaultRequiredText
	}
	if c.SelectText == "" {
		c.SelectText = DefaultSelectText
	}
	if c.DocumentationText == "" {
		c.DocumentationText = DefaultDocumentationText
	}
	return c
}

// Option customises a Form.
type Option func(*Form)

// WithConfig replaces the configuration. Blank strings fall back to their
// defaults; IncludeSubmitButton is taken as given.
func WithConfig(cfg Config) Option {
	return func(f *Form) {
		f.cfg = cfg
	}
}

// WithID overrides the form id.
func WithID(id string) Option {
	return func(f *Form) {
		f.cfg.ID = id
	}
}

// WithSubmitButton toggles the submit button.
func WithSubmitButton(include bool) Option {
	return func(f *Form) {
		f.cfg.IncludeSubmitButton = include
	}
}

// WithSubmitText overrides the submit button text.
func WithSubmitText(text string) Option {
	return func(f *Form) {
		f.cfg.SubmitText = text
	}
}

// WithRequiredText overrides the required indicator text.
func WithRequiredText(text string) Option {
	return func(f *Form) {
		f.cfg.RequiredText = text
	}
}

// WithSelectText overrides the select placeholder text.
func WithSelectText(text string) Option {
	return func(f *Form) {
		f.cfg.SelectText = text
	}
}

// WithRegistry injects the evaluator registry. Defaults to DefaultRegistry.
func WithRegistry(registry *Registry) Option {
	return func(f *Form) {
		if registry != nil {
			f.registry = registry
		}
	}
}

// WithLogger injects a logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithChangeHandler registers a handler receiving the updated tree after
// every value mutation.
func WithChangeHandler(fn func(model.FormMeta)) Option {
	return func(f *Form) {
		if fn != nil {
			f.onChange = append(f.onChange, fn)
		}
	}
}

// WithValidateHandler registers a handler receiving the aggregate validity at
// init and whenever it toggles.
func WithValidateHandler(fn func(bool)) Option {
	return func(f *Form) {
		if fn != nil {
			f.onValidate = append(f.onValidate, fn)
		}
	}
}

// WithConfirmHandler registers a handler receiving opaque confirm payloads
// bubbled from control interaction.
func WithConfirmHandler(fn func(any)) Option {
	return func(f *Form) {
		if fn != nil {
			f.onConfirm = append(f.onConfirm, fn)
		}
	}
}

// WithSubmitHandler registers a handler receiving serialised data on submit.
func WithSubmitHandler(fn func(model.FormData)) Option {
	return func(f *Form) {
		if fn != nil {
			f.onSubmit = append(f.onSubmit, fn)
		}
	}
}
