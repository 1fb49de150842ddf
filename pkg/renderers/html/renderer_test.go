package html_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/html"
	"github.com/goliatone/go-dynform/pkg/testsupport"
)

func renderSample(t *testing.T, f *form.Form, opts render.RenderOptions, options ...html.Option) string {
	t.Helper()

	renderer, err := html.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), f.Snapshot(), opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, output)
		}
	}
}

func assertNotContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(output, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, output)
		}
	}
}

func TestRenderer_FormChrome(t *testing.T) {
	f := form.New(testsupport.SampleMeta(), form.WithID("settings"))
	out := renderSample(t, f, render.RenderOptions{})

	assertContains(t, out,
		`<form id="settings" class="dynamic-form" method="post" data-valid="true"`,
		`<h3>General</h3>`,
		`<p class="section-description">Basic settings</p>`,
		`<button type="submit" class="btn btn-submit">Submit</button>`,
	)
	assertNotContains(t, out, " disabled>")
}

func TestRenderer_ColumnsAndIndicators(t *testing.T) {
	out := renderSample(t, form.New(testsupport.SampleMeta()), render.RenderOptions{})

	assertContains(t, out,
		`<div class="col-md-3">`,
		`<div class="col-md-2">`,
		`<label for="d-form-id_1" title="Optional number">First</label>`,
		`Second <span class="small">(required)</span>`,
		`min="0" max="100" required>`,
		`value="10"`,
	)
}

func TestRenderer_SelectOptions(t *testing.T) {
	out := renderSample(t, form.New(testsupport.SampleMeta()), render.RenderOptions{})

	assertContains(t, out,
		`<option value="">Select...</option>`,
		`<option value="opt1" selected>Option 1</option>`,
		"<option value=\"opt2a\">\u00a0\u00a0Option 2a</option>",
		`<select id="d-form-id_3" name="id_3" class="form-control" multiple>`,
	)
}

func TestRenderer_ExcludeNullOptionAndEmptyRequired(t *testing.T) {
	meta := model.FormMeta{ControlSections: []model.ControlSection{{
		Label: "Only",
		ControlGroups: []model.ControlGroup{{
			Label: "Pick",
			Controls: []model.Control{
				{Name: "size", Label: "Size", Type: model.ControlTypeSelect, ExcludeNullOption: true, Required: true,
					Options: []model.Option{{ID: "s", Label: "Small"}}},
				{Name: "qty", Label: "Quantity", Type: model.ControlTypeNumber, Required: true},
			},
		}},
	}}}
	out := renderSample(t, form.New(meta, form.WithRequiredText("obligatorio")), render.RenderOptions{})

	assertNotContains(t, out, `<option value="">`)
	assertContains(t, out,
		`<option value="s" selected>Small</option>`,
		`Quantity <span class="small text-danger">(obligatorio)</span>`,
		`class="btn btn-secondary" disabled>`,
	)
}

func TestRenderer_SingleControlGroupLabel(t *testing.T) {
	meta := model.FormMeta{ControlSections: []model.ControlSection{{
		Label: "Only",
		ControlGroups: []model.ControlGroup{{
			Label:    "Amount",
			Controls: []model.Control{{Name: "amount", Label: "Amount", HelpText: "In euros", Type: model.ControlTypeNumber, Required: true}},
		}},
	}}}
	out := renderSample(t, form.New(meta), render.RenderOptions{})

	assertContains(t, out,
		`<label class="group-label" title="In euros">Amount <span class="small text-danger">(required)</span></label>`,
		`<div class="col-md-6">`,
	)
}

func TestRenderer_DocumentationIsSanitised(t *testing.T) {
	f := form.New(testsupport.SampleMeta())
	if _, err := f.ToggleDocumentation(0); err != nil {
		t.Fatalf("toggle documentation: %v", err)
	}
	out := renderSample(t, f, render.RenderOptions{})

	assertContains(t, out,
		`<details class="section-documentation" open>`,
		`<summary>Documentation</summary>`,
		`href="https://example.com/docs"`,
	)
	assertNotContains(t, out, "<script", "alert(1)")
}

func TestRenderer_DocumentationSummaryText(t *testing.T) {
	f := form.New(testsupport.SampleMeta(), form.WithConfig(form.Config{DocumentationText: "Docs"}))
	out := renderSample(t, f, render.RenderOptions{})

	assertContains(t, out, `<summary>Docs</summary>`)
	assertNotContains(t, out, `<summary>Documentation</summary>`)
}

func TestRenderer_CollapsedSectionKeepsControls(t *testing.T) {
	meta := testsupport.SampleMeta()
	meta.ControlSections[1].Collapsed = true
	out := renderSample(t, form.New(meta), render.RenderOptions{})

	assertContains(t, out,
		`form-section collapsible collapsed`,
		`<span class="chevron chevron-right" aria-hidden="true">`,
		`<div class="section-body" hidden>`,
		`name="id_1"`,
		`name="id_2"`,
		`name="id_5"`,
	)
	assertNotContains(t, out, `chevronchevron`)
}

func TestRenderer_ExpandedSectionChevron(t *testing.T) {
	out := renderSample(t, form.New(testsupport.SampleMeta()), render.RenderOptions{})

	assertContains(t, out, `<span class="chevron chevron-down" aria-hidden="true">`)
	assertNotContains(t, out, `<div class="section-body" hidden>`, `chevronchevron`)
}

func TestRenderer_EscapesLabels(t *testing.T) {
	meta := model.FormMeta{ControlSections: []model.ControlSection{{
		Label:         `<b>Bold</b>`,
		ControlGroups: []model.ControlGroup{},
	}}}
	out := renderSample(t, form.New(meta), render.RenderOptions{})

	assertContains(t, out, `&lt;b&gt;Bold&lt;/b&gt;`)
}

func TestRenderer_OptionsAndTheme(t *testing.T) {
	f := form.New(testsupport.SampleMeta())
	opts := render.RenderOptions{
		Action:       "/settings",
		Method:       "PUT",
		HiddenFields: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "abc")),
		Errors:       render.MapErrorPayload(f.Meta(), map[string][]string{"/body/id_2": {"Too large"}}).Controls,
		FormErrors:   []string{"Try again"},
		Theme: &theme.RendererConfig{
			Theme:    "acme",
			Variant:  "dark",
			CSSVars:  map[string]string{"primary": "#123456"},
			Tokens:   map[string]string{"class.form": "needs-validation"},
			AssetURL: func(path string) string { return "/static/" + path },
		},
	}
	out := renderSample(t, f, opts, html.WithStylesheetLink(true))

	assertContains(t, out,
		`class="dynamic-form needs-validation theme-acme theme-dark" method="put" action="/settings"`,
		`style="--primary: #123456;"`,
		`<link rel="stylesheet" href="/static/dynform.css">`,
		`<input type="hidden" name="_csrf" value="abc">`,
		`<div class="invalid-feedback">Too large</div>`,
		`<p>Try again</p>`,
	)
}

func TestRenderer_HiddenFieldsCannotShadowControls(t *testing.T) {
	f := form.New(testsupport.SampleMeta())
	out := renderSample(t, f, render.RenderOptions{
		HiddenFields: map[string]string{"id_1": "99", "record": "7"},
	})

	assertContains(t, out, `<input type="hidden" name="record" value="7">`)
	assertNotContains(t, out, `type="hidden" name="id_1"`)
}

func TestRenderer_ThemePartialOverridesControlTemplate(t *testing.T) {
	files := fstest.MapFS{}
	if err := copyTemplates(files); err != nil {
		t.Fatalf("copy templates: %v", err)
	}
	files["templates/custom/number.tmpl"] = &fstest.MapFile{Data: []byte(`<span data-custom="{{ control.name }}"></span>`)}

	opts := render.RenderOptions{Theme: &theme.RendererConfig{
		Partials: map[string]string{"controls.number": "templates/custom/number.tmpl"},
	}}
	out := renderSample(t, form.New(testsupport.SampleMeta()), opts, html.WithTemplatesFS(files))

	assertContains(t, out, `<span data-custom="id_1"></span>`)
}

func TestRenderer_UnknownControlType(t *testing.T) {
	meta := model.FormMeta{ControlSections: []model.ControlSection{{
		Label:         "Only",
		ControlGroups: []model.ControlGroup{{Controls: []model.Control{{Name: "note", Type: "text"}}}},
	}}}
	renderer, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	_, err = renderer.Render(context.Background(), form.New(meta).Snapshot(), render.RenderOptions{})
	if !errors.Is(err, html.ErrNoControlTemplate) {
		t.Fatalf("expected ErrNoControlTemplate, got %v", err)
	}
}

func TestRenderer_Localized(t *testing.T) {
	opts := render.RenderOptions{
		Locale:     "es",
		Translator: translations{"General": "General ES", "Submit": "Enviar"},
	}
	f := form.New(testsupport.SampleMeta())
	snap := f.Snapshot()
	out := renderSample(t, f, opts)

	assertContains(t, out, `<h3>General ES</h3>`, `>Enviar</button>`)
	if snap.Sections[0].Label != "General" {
		t.Fatalf("caller snapshot must not be localised in place")
	}
}

type translations map[string]string

func (t translations) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing")
}
