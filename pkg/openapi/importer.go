package openapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

// Option configures an Importer.
type Option func(*Importer)

// Importer maps OpenAPI operations onto form metadata.
type Importer struct {
	validate   bool
	externals  bool
	labeler    func(string) string
	sectionFor func(Operation) string
	registry   *form.Registry
	logger     *zap.Logger
}

// WithValidation toggles document validation after loading. Enabled by
// default; examples are never validated.
func WithValidation(enabled bool) Option {
	return func(i *Importer) {
		i.validate = enabled
	}
}

// WithExternalRefs allows $ref pointers to other files or URLs.
func WithExternalRefs(enabled bool) Option {
	return func(i *Importer) {
		i.externals = enabled
	}
}

// WithLabeler replaces the property name → label fallback used when a
// schema has no title.
func WithLabeler(fn func(string) string) Option {
	return func(i *Importer) {
		if fn != nil {
			i.labeler = fn
		}
	}
}

// WithSectionLabel overrides the label of the first section, which defaults
// to the operation summary or id.
func WithSectionLabel(fn func(Operation) string) Option {
	return func(i *Importer) {
		if fn != nil {
			i.sectionFor = fn
		}
	}
}

// WithRegistry sets the evaluator registry used to normalise defaults.
func WithRegistry(registry *form.Registry) Option {
	return func(i *Importer) {
		if registry != nil {
			i.registry = registry
		}
	}
}

// WithLogger injects a logger. Skipped properties are logged at debug.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Importer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New constructs an Importer.
func New(options ...Option) *Importer {
	i := &Importer{
		validate:   true,
		labeler:    Humanize,
		sectionFor: defaultSectionLabel,
		registry:   form.DefaultRegistry(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(i)
		}
	}
	return i
}

// Operations lists the operations of a JSON or YAML OpenAPI document.
func (i *Importer) Operations(ctx context.Context, data []byte) ([]Operation, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return nil, err
	}
	return collectOperations(doc), nil
}

// FromOperation maps the request body of operationID onto form metadata.
func (i *Importer) FromOperation(ctx context.Context, data []byte, operationID string) (model.FormMeta, error) {
	doc, err := i.load(ctx, data)
	if err != nil {
		return model.FormMeta{}, err
	}

	for _, op := range collectOperations(doc) {
		if op.ID != operationID {
			continue
		}
		schema := requestSchema(op.raw)
		if schema == nil || len(schema.Properties) == 0 {
			return model.FormMeta{}, fmt.Errorf("%w: %s", ErrNoRequestBody, operationID)
		}
		m := mapper{labeler: i.labeler, logger: i.logger.With(zap.String("operation", op.ID))}
		meta := model.FormMeta{}
		root := model.ControlSection{
			Label:         i.sectionFor(op),
			Description:   op.Description,
			ControlGroups: []model.ControlGroup{},
		}
		meta.ControlSections = m.sections(root, "", schema)
		return i.registry.Normalize(meta), nil
	}
	return model.FormMeta{}, fmt.Errorf("%w: %s", ErrOperationNotFound, operationID)
}

// FromOperation maps operationID with a default Importer.
func FromOperation(ctx context.Context, data []byte, operationID string) (model.FormMeta, error) {
	return New().FromOperation(ctx, data, operationID)
}

func (i *Importer) load(ctx context.Context, data []byte) (*openapi3.T, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = i.externals

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if i.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate: %w", err)
		}
	}
	return doc, nil
}

func defaultSectionLabel(op Operation) string {
	if op.Summary != "" {
		return op.Summary
	}
	return op.ID
}
