package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, form.Snapshot, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(namedRenderer("tui"))
	reg.MustRegister(namedRenderer("html"))

	if err := reg.Register(namedRenderer("html")); !errors.Is(err, render.ErrDuplicateRenderer) {
		t.Fatalf("expected ErrDuplicateRenderer, got %v", err)
	}
	if err := reg.Register(nil); !errors.Is(err, render.ErrInvalidRenderer) {
		t.Fatalf("expected ErrInvalidRenderer, got %v", err)
	}
	if err := reg.Register(namedRenderer(" ")); !errors.Is(err, render.ErrInvalidRenderer) {
		t.Fatalf("expected blank name to be rejected, got %v", err)
	}
	if diff := cmp.Diff([]string{"tui", "html"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := reg.Get("pdf"); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected ErrRendererNotFound, got %v", err)
	}
	if !reg.Has("tui") {
		t.Fatalf("expected tui to be registered")
	}
	def, err := reg.Default()
	if err != nil || def.Name() != "tui" {
		t.Fatalf("default = %v, %v; want tui", def, err)
	}
	if _, err := render.NewRegistry().Default(); !errors.Is(err, render.ErrRendererNotFound) {
		t.Fatalf("expected empty registry to have no default, got %v", err)
	}
}

func TestRenderOptions_Theme(t *testing.T) {
	var opts render.RenderOptions
	if opts.AssetURL("app.css") != "app.css" || opts.ThemeName() != "" {
		t.Fatalf("expected passthrough without theme")
	}
}
