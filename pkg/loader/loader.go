package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

// Option configures a Loader.
type Option func(*Loader)

// Loader reads and decodes metadata documents.
type Loader struct {
	fsys       fs.FS
	http       *http.Client
	timeout    time.Duration
	registry   *form.Registry
	validate   bool
	shapeCheck bool
	logger     *zap.Logger
}

// WithFileSystem sets the fs.FS used for SourceKindFS.
func WithFileSystem(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// WithHTTPClient enables URL sources through client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.http = client
	}
}

// WithHTTPTimeout caps remote fetch durations.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		l.timeout = timeout
	}
}

// WithRegistry sets the evaluator registry used to normalise values.
func WithRegistry(registry *form.Registry) Option {
	return func(l *Loader) {
		if registry != nil {
			l.registry = registry
		}
	}
}

// WithValidation toggles model.Validate after decoding. Enabled by default.
func WithValidation(enabled bool) Option {
	return func(l *Loader) {
		l.validate = enabled
	}
}

// WithShapeCheck toggles the model.IsDynamicFormMeta check on the raw
// document. Enabled by default.
func WithShapeCheck(enabled bool) Option {
	return func(l *Loader) {
		l.shapeCheck = enabled
	}
}

// WithLogger injects a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New constructs a Loader. URL sources stay disabled until an HTTP client is
// supplied.
func New(options ...Option) *Loader {
	l := &Loader{
		registry:   form.DefaultRegistry(),
		validate:   true,
		shapeCheck: true,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load reads src and decodes it into metadata.
func (l *Loader) Load(ctx context.Context, src Source) (model.FormMeta, error) {
	data, err := l.Read(ctx, src)
	if err != nil {
		return model.FormMeta{}, err
	}
	meta, err := l.Parse(data, src.Location)
	if err != nil {
		return model.FormMeta{}, err
	}
	l.logger.Debug("loaded form metadata",
		zap.Stringer("source", src),
		zap.Int("sections", len(meta.ControlSections)),
	)
	return meta, nil
}

// Read returns the raw bytes behind src without decoding them.
func (l *Loader) Read(ctx context.Context, src Source) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("loader: context is required")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind {
	case SourceKindFile:
		data, err = readFile(ctx, src.Location)
	case SourceKindFS:
		data, err = readFS(ctx, l.fsys, src.Location)
	case SourceKindURL:
		data, err = readHTTP(ctx, l.http, src.Location, l.timeout)
	default:
		err = fmt.Errorf("loader: unsupported source kind %q", src.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", src, err)
	}
	return data, nil
}

// Parse decodes a JSON or YAML payload. name is used for format detection
// (by extension) and error messages.
func (l *Loader) Parse(data []byte, name string) (model.FormMeta, error) {
	raw, err := decodeGeneric(data, name)
	if err != nil {
		return model.FormMeta{}, err
	}
	if l.shapeCheck && !model.IsDynamicFormMeta(raw) {
		return model.FormMeta{}, fmt.Errorf("%w: %s", ErrNotFormMeta, displayName(name))
	}

	meta, err := decodeMeta(raw)
	if err != nil {
		return model.FormMeta{}, fmt.Errorf("loader: parse %s: %w", displayName(name), err)
	}
	if l.validate {
		if err := model.Validate(meta); err != nil {
			return model.FormMeta{}, fmt.Errorf("loader: %s: %w", displayName(name), err)
		}
	}
	return l.registry.Normalize(meta), nil
}

// Parse decodes a payload with the default loader.
func Parse(data []byte, name string) (model.FormMeta, error) {
	return New().Parse(data, name)
}

// LoadFile reads a document from disk with the default loader.
func LoadFile(ctx context.Context, path string) (model.FormMeta, error) {
	return New().Load(ctx, FileSource(path))
}

// LoadFS reads a document from fsys with the default loader.
func LoadFS(ctx context.Context, fsys fs.FS, name string) (model.FormMeta, error) {
	return New(WithFileSystem(fsys)).Load(ctx, FSSource(name))
}

func displayName(name string) string {
	if name == "" {
		return "<inline>"
	}
	return name
}
