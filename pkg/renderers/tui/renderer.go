package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
)

// Renderer fills a form interactively in the terminal and serialises the
// submitted data.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	confirmSubmit     bool
	showDocumentation bool
	pageSize          int
	logger            *zap.Logger
	plain             *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// DefaultPageSize is the number of options shown per select page.
const DefaultPageSize = 10

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		pageSize:     DefaultPageSize,
		logger:       zap.NewNop(),
		plain:        bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if !slices.Contains(OutputFormats(), r.outputFormat) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialisation produced by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render builds a form from the snapshot, fills it through the prompt
// driver and returns the serialised submit payload.
func (r *Renderer) Render(ctx context.Context, snapshot form.Snapshot, opts render.RenderOptions) ([]byte, error) {
	f := form.New(snapshot.Meta, form.WithConfig(snapshot.Config), form.WithLogger(r.logger))
	data, err := r.Fill(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	return r.Serialize(data)
}

// Fill walks every section, group and control of f in order, feeding
// answers to f.Input. Required controls are asked again until they hold a
// value. The form is then submitted and its data returned.
func (r *Renderer) Fill(ctx context.Context, f *form.Form, opts render.RenderOptions) (model.FormData, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}

	snap := f.Snapshot()
	render.LocalizeSnapshot(&snap, opts)

	for _, section := range snap.Sections {
		if err := r.announceSection(ctx, section); err != nil {
			return nil, err
		}
		for _, group := range section.Groups {
			if group.Label != "" && len(group.Controls) > 1 {
				if err := r.info(ctx, r.theme.InfoPrefix+group.Label); err != nil {
					return nil, err
				}
			}
			for _, view := range group.Controls {
				if err := r.promptControl(ctx, f, view, snap.Config, opts.Errors[view.Control.Name]); err != nil {
					return nil, err
				}
			}
		}
	}

	if r.confirmSubmit {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: snap.Config.SubmitText + "?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	data := f.Submit()
	if r.submitTransformer != nil {
		var err error
		data, err = r.submitTransformer(data)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return data, nil
}

// Serialize encodes data in the configured output format.
func (r *Renderer) Serialize(data model.FormData) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return append(out, '\n'), nil
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, name := range sortedNames(data) {
			switch v := data[name].(type) {
			case []string:
				for _, item := range v {
					values.Add(name, item)
				}
			default:
				values.Set(name, formatValue(v, ""))
			}
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, name := range sortedNames(data) {
			fmt.Fprintf(&b, "%s: %s\n", name, formatValue(data[name], "-"))
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, r.outputFormat)
	}
}

func (r *Renderer) announceSection(ctx context.Context, section form.SectionView) error {
	if err := r.info(ctx, r.theme.SectionPrefix+section.Label); err != nil {
		return err
	}
	if section.Description != "" {
		if err := r.info(ctx, r.theme.InfoPrefix+section.Description); err != nil {
			return err
		}
	}
	if r.showDocumentation && section.Documentation != "" {
		text := strings.TrimSpace(html.UnescapeString(r.plain.Sanitize(section.Documentation)))
		if text != "" {
			return r.info(ctx, r.theme.InfoPrefix+text)
		}
	}
	return nil
}

func (r *Renderer) promptControl(ctx context.Context, f *form.Form, view form.ControlView, cfg form.Config, serverErrors []string) error {
	for _, message := range serverErrors {
		if err := r.info(ctx, r.theme.ErrorPrefix+message); err != nil {
			return err
		}
	}

	if view.Control.Required && len(view.Options) == 0 {
		switch view.Control.Type {
		case model.ControlTypeSelect, model.ControlTypeMultiSelect:
			return fmt.Errorf("%w: control %q", ErrNoOptions, view.Control.Name)
		}
	}

	for {
		raw, supported, err := r.ask(ctx, view, cfg)
		if err != nil {
			return err
		}
		if !supported {
			r.logger.Warn("skipping control without prompt",
				zap.String("control", view.Control.Name),
				zap.String("type", string(view.Control.Type)),
			)
			return nil
		}
		if err := f.Input(view.Ref, raw...); err != nil {
			return err
		}

		current, _ := f.Meta().Control(view.Ref)
		if form.ControlValid(current) {
			return nil
		}
		if err := r.info(ctx, fmt.Sprintf("%s%s is %s", r.theme.ErrorPrefix, controlLabel(view.Control), cfg.RequiredText)); err != nil {
			return err
		}
		view.Control.Value = current.Value
		view.Selected = nil
		view.Display = ""
	}
}

func (r *Renderer) ask(ctx context.Context, view form.ControlView, cfg form.Config) ([]string, bool, error) {
	control := view.Control
	message := controlLabel(control)
	if control.Required {
		message += " (" + cfg.RequiredText + ")"
	}

	switch control.Type {
	case model.ControlTypeNumber:
		answer, err := r.driver.Input(ctx, InputConfig{
			Message:   message,
			Default:   view.Display,
			Help:      control.HelpText,
			Validator: numberValidator(control),
		})
		if err != nil {
			return nil, true, err
		}
		return []string{answer}, true, nil

	case model.ControlTypeSelect:
		labels, ids := optionChoices(view.Options)
		if !control.ExcludeNullOption {
			labels = append([]string{cfg.SelectText}, labels...)
			ids = append([]string{""}, ids...)
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIndex(ids, view.Selected),
			Help:         control.HelpText,
			PageSize:     r.pageSize,
		})
		if err != nil {
			return nil, true, err
		}
		if idx < 0 || idx >= len(ids) {
			return []string{""}, true, nil
		}
		return []string{ids[idx]}, true, nil

	case model.ControlTypeMultiSelect:
		labels, ids := optionChoices(view.Options)
		var defaults []int
		for i, id := range ids {
			if slices.Contains(view.Selected, id) {
				defaults = append(defaults, i)
			}
		}
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  message,
			Options:  labels,
			Defaults: defaults,
			Help:     control.HelpText,
			PageSize: r.pageSize,
		})
		if err != nil {
			return nil, true, err
		}
		values := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx >= 0 && idx < len(ids) {
				values = append(values, ids[idx])
			}
		}
		return values, true, nil

	default:
		return nil, false, nil
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func controlLabel(control model.Control) string {
	if label := strings.TrimSpace(control.Label); label != "" {
		return label
	}
	return control.Name
}

func optionChoices(options []model.FlatOption) ([]string, []string) {
	labels := make([]string, 0, len(options))
	ids := make([]string, 0, len(options))
	for _, option := range options {
		label := option.Label
		if label == "" {
			label = option.ID
		}
		labels = append(labels, strings.Repeat("  ", option.Depth)+label)
		ids = append(ids, option.ID)
	}
	return labels, ids
}

func defaultIndex(ids, selected []string) int {
	if len(selected) == 0 {
		return 0
	}
	if idx := slices.Index(ids, selected[0]); idx >= 0 {
		return idx
	}
	return 0
}

func numberValidator(control model.Control) func(string) error {
	return func(raw string) error {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return nil
		}
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", raw)
		}
		if control.Min != nil && value < *control.Min {
			return fmt.Errorf("must be at least %s", formatValue(*control.Min, ""))
		}
		if control.Max != nil && value > *control.Max {
			return fmt.Errorf("must be at most %s", formatValue(*control.Max, ""))
		}
		return nil
	}
}

func sortedNames(data model.FormData) []string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func formatValue(value any, empty string) string {
	switch v := value.(type) {
	case nil:
		return empty
	case string:
		if v == "" {
			return empty
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		if len(v) == 0 {
			return empty
		}
		return strings.Join(v, ", ")
	default:
		return fmt.Sprint(v)
	}
}
