package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/model"
)

// OutputFormat controls how submitted data is serialised.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded;
	// multiselect values repeat their key.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits one "name: value" line per control.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// OutputFormats lists the supported formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText}
}

// Theme holds message prefixes applied to informational output.
type Theme struct {
	SectionPrefix string
	InfoPrefix    string
	ErrorPrefix   string
}

// DefaultTheme returns the stock prefixes.
func DefaultTheme() Theme {
	return Theme{SectionPrefix: "== ", InfoPrefix: "", ErrorPrefix: "! "}
}

// SubmitTransformer rewrites submitted data before serialisation.
type SubmitTransformer func(model.FormData) (model.FormData, error)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialisation.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer rewrites data prior to serialisation.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithConfirmSubmit asks for confirmation before submitting. Declining
// returns ErrAborted.
func WithConfirmSubmit(enabled bool) Option {
	return func(r *Renderer) {
		r.confirmSubmit = enabled
	}
}

// WithDocumentation prints section documentation as plain text.
func WithDocumentation(enabled bool) Option {
	return func(r *Renderer) {
		r.showDocumentation = enabled
	}
}

// WithPageSize limits how many options a select prompt shows at once.
func WithPageSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

// WithLogger injects a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
