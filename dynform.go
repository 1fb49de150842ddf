package dynform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/orchestrator"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
)

// FormMeta aliases model.FormMeta for callers that only import the root
// package.
type FormMeta = model.FormMeta

// FormData aliases model.FormData.
type FormData = model.FormData

// RenderOptions describes per-request overrides renderers use to surface
// server-side errors, hidden fields and theme selection.
type RenderOptions = render.RenderOptions

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a metadata loader.
func NewLoader(options ...loader.Option) *loader.Loader {
	return loader.New(options...)
}

// NewImporter constructs an OpenAPI importer.
func NewImporter(options ...openapi.Option) *openapi.Importer {
	return openapi.New(options...)
}

// GenerateHTML loads form metadata from source and renders it with the HTML
// renderer. It is the simplest entry point for callers that just want markup.
func GenerateHTML(ctx context.Context, source loader.Source, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: "html",
	})
}

// GenerateFromOperation builds a form from the request body of an OpenAPI
// operation and renders it with rendererName (empty for the default).
func GenerateFromOperation(ctx context.Context, source loader.Source, operationID, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Source:      source,
		OperationID: operationID,
		Renderer:    rendererName,
	})
}

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy or
// extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
