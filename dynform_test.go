package dynform

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-dynform/pkg/loader"
)

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), loader.FileSource("testdata/form.yaml"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`<form id="d-form"`, `name="id_2"`, `Option 2`} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestGenerateFromOperation(t *testing.T) {
	out, err := GenerateFromOperation(context.Background(), loader.FileSource("testdata/openapi.yaml"), "createJob", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `name="priority"`) {
		t.Fatalf("expected priority control in output:\n%s", out)
	}
}

func TestEmbeddedTemplatesContainsForm(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
}
