package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/loader"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/openapi"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects the metadata loader.
func WithLoader(l *loader.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithImporter injects the OpenAPI importer.
func WithImporter(importer *openapi.Importer) Option {
	return func(o *Orchestrator) {
		o.importer = importer
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformers registers transformers run in order against the metadata
// before the form is built.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// WithFormOptions appends options passed to form.New for every request.
func WithFormOptions(options ...form.Option) Option {
	return func(o *Orchestrator) {
		o.formOptions = append(o.formOptions, options...)
	}
}

// WithLogger injects a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates loading, building and rendering a form.
type Orchestrator struct {
	loader          *loader.Loader
	importer        *openapi.Importer
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	formOptions     []form.Option
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator. Missing collaborators fall back to the
// built-in loader, importer and a registry holding the HTML renderer.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(o)
		}
	}
	if o.loader == nil {
		o.loader = loader.New(loader.WithLogger(o.logger))
	}
	if o.importer == nil {
		o.importer = openapi.New(openapi.WithLogger(o.logger))
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := html.New(html.WithLogger(o.logger))
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	return o
}

// Request describes one generation.
type Request struct {
	// Source locates a form metadata document, or an OpenAPI document when
	// OperationID is set. Ignored when Meta is supplied.
	Source loader.Source

	// Meta bypasses loading.
	Meta *model.FormMeta

	// OperationID selects an OpenAPI operation whose request body becomes
	// the form.
	OperationID string

	// Renderer names the renderer; empty uses the default.
	Renderer string

	// Config overrides the form configuration.
	Config *form.Config

	RenderOptions render.RenderOptions
}

// Resolve returns the transformed metadata for req without rendering it.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (model.FormMeta, error) {
	if ctx == nil {
		return model.FormMeta{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormMeta{}, err
	}

	var (
		meta model.FormMeta
		err  error
	)
	switch {
	case req.Meta != nil:
		meta = req.Meta.Clone()
	case req.Source.Location == "":
		return model.FormMeta{}, errors.New("orchestrator: source or meta is required")
	case req.OperationID != "":
		var data []byte
		data, err = o.loader.Read(ctx, req.Source)
		if err == nil {
			meta, err = o.importer.FromOperation(ctx, data, req.OperationID)
		}
	default:
		meta, err = o.loader.Load(ctx, req.Source)
	}
	if err != nil {
		return model.FormMeta{}, fmt.Errorf("orchestrator: resolve metadata: %w", err)
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &meta); err != nil {
			return model.FormMeta{}, fmt.Errorf("orchestrator: transform metadata: %w", err)
		}
	}
	return meta, nil
}

// Build resolves req and returns a live form around the metadata.
func (o *Orchestrator) Build(ctx context.Context, req Request) (*form.Form, error) {
	meta, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	options := append([]form.Option{form.WithLogger(o.logger)}, o.formOptions...)
	if req.Config != nil {
		options = append(options, form.WithConfig(*req.Config))
	}
	return form.New(meta, options...), nil
}

// Generate builds the form for req and renders its snapshot.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	f, err := o.Build(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, f.Snapshot(), req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("generated form",
		zap.String("renderer", renderer.Name()),
		zap.Bool("valid", f.Valid()),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// Renderer returns the renderer Generate would use for name.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	return o.rendererFor(name)
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	fallback, err := o.registry.Default()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: no renderers registered: %w", err)
	}
	o.logger.Debug("default renderer missing, using fallback",
		zap.String("want", target),
		zap.String("using", fallback.Name()),
	)
	return fallback, nil
}
