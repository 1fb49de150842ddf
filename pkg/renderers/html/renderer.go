package html

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynform/pkg/render/template"
	"github.com/goliatone/go-dynform/pkg/render/template/gotemplate"
)

const (
	formTemplate    = "templates/form.tmpl"
	sectionTemplate = "templates/section.tmpl"
	groupTemplate   = "templates/group.tmpl"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	controls         *ControlRegistry
	policy           *bluemonday.Policy
	logger           *zap.Logger
	stylesheet       bool
}

// WithTemplatesFS supplies an alternate template bundle. It must contain the
// same paths as TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithControlRegistry replaces the control type → template mapping.
func WithControlRegistry(registry *ControlRegistry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.controls = registry
		}
	}
}

// WithDocumentationPolicy replaces the sanitiser applied to section
// documentation. Defaults to bluemonday's UGC policy.
func WithDocumentationPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// WithLogger injects a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithStylesheetLink emits a <link> to StylesheetName, resolved through the
// theme's asset resolver.
func WithStylesheetLink(enabled bool) Option {
	return func(cfg *config) {
		cfg.stylesheet = enabled
	}
}

// Renderer draws a form snapshot as an HTML fragment.
type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	controls   *ControlRegistry
	policy     *bluemonday.Policy
	logger     *zap.Logger
	stylesheet bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.controls == nil {
		cfg.controls = DefaultControlRegistry()
	}
	if cfg.policy == nil {
		cfg.policy = bluemonday.UGCPolicy()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("dynform-html"),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithTrimBlocks(true),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	return &Renderer{
		templates:  templates,
		controls:   cfg.controls,
		policy:     cfg.policy,
		logger:     cfg.logger,
		stylesheet: cfg.stylesheet,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render draws snapshot. Section documentation is sanitised; every other
// string is escaped by the template engine.
func (r *Renderer) Render(ctx context.Context, snapshot form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	snap := snapshot.Clone()
	render.LocalizeSnapshot(&snap, opts)

	themeCtx := buildThemeView(opts.Theme)
	classes := defaultChromeClasses().withTokens(themeCtx.Tokens)
	var partials map[string]string
	if opts.Theme != nil {
		partials = opts.Theme.Partials
	}

	base := map[string]any{
		"config":  snap.Config,
		"classes": classes,
		"theme":   themeCtx,
	}

	var sections strings.Builder
	for _, section := range snap.Sections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		html, err := r.renderSection(section, snap.Config.ID, base, partials, opts.Errors)
		if err != nil {
			return nil, err
		}
		sections.WriteString(html)
	}

	method := strings.ToLower(strings.TrimSpace(opts.Method))
	if method == "" {
		method = "post"
	}
	fields, shadowed := render.FormHiddenFields(snap.Meta, opts.HiddenFields)
	if len(shadowed) > 0 {
		r.logger.Warn("hidden fields share a control name and were skipped", zap.Strings("fields", shadowed))
	}
	hidden := make([]hiddenView, 0, len(fields))
	for _, field := range fields {
		hidden = append(hidden, hiddenView{Name: field.Name, Value: field.Value})
	}
	stylesheet := ""
	if r.stylesheet {
		stylesheet = opts.AssetURL(StylesheetName)
	}

	data := with(base, map[string]any{
		"valid":      snap.Valid,
		"button":     snap.Button,
		"method":     method,
		"action":     opts.Action,
		"hidden":     hidden,
		"formErrors": render.MergeFormErrors(opts.FormErrors),
		"stylesheet": stylesheet,
		"sections":   sections.String(),
	})
	out, err := r.templates.RenderTemplate(formTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}

	r.logger.Debug("rendered form",
		zap.String("form", snap.Config.ID),
		zap.Int("sections", len(snap.Sections)),
		zap.Bool("valid", snap.Valid),
	)
	return []byte(out), nil
}

func (r *Renderer) renderSection(section form.SectionView, formID string, base map[string]any, partials map[string]string, errors map[string][]string) (string, error) {
	// Collapsed bodies stay in the markup so their values are still posted.
	var groups strings.Builder
	for _, group := range section.Groups {
		html, err := r.renderGroup(group, formID, base, partials, errors)
		if err != nil {
			return "", err
		}
		groups.WriteString(html)
	}

	view := sectionView{
		Index:             section.Index,
		Label:             section.Label,
		Description:       section.Description,
		Documentation:     strings.TrimSpace(r.policy.Sanitize(section.Documentation)),
		DocumentationOpen: section.State.DocumentationOpen,
		Collapsible:       section.Collapsible,
		Visible:           section.Visible,
		Valid:             section.Valid,
	}
	out, err := r.templates.RenderTemplate(sectionTemplate, with(base, map[string]any{
		"section": view,
		"groups":  groups.String(),
	}))
	if err != nil {
		return "", fmt.Errorf("html renderer: render section %q: %w", section.Label, err)
	}
	return out, nil
}

func (r *Renderer) renderGroup(group form.GroupView, formID string, base map[string]any, partials map[string]string, errors map[string][]string) (string, error) {
	var controls strings.Builder
	view := groupView{Label: group.Label, Valid: group.Valid}

	for _, control := range group.Controls {
		cv := newControlView(formID, control, errors[control.Control.Name])
		if group.Single != nil {
			single := cv
			view.Single = &single
		}

		path, err := r.controls.resolve(control.Control.Type, partials)
		if err != nil {
			return "", err
		}
		out, err := r.templates.RenderTemplate(path, with(base, map[string]any{"control": cv}))
		if err != nil {
			return "", fmt.Errorf("html renderer: render control %q: %w", control.Control.Name, err)
		}
		controls.WriteString(out)
	}

	out, err := r.templates.RenderTemplate(groupTemplate, with(base, map[string]any{
		"group":    view,
		"controls": controls.String(),
	}))
	if err != nil {
		return "", fmt.Errorf("html renderer: render group %q: %w", group.Label, err)
	}
	return out, nil
}

func with(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range extra {
		out[key] = value
	}
	return out
}
