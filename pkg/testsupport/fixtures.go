package testsupport

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-dynform/pkg/model"
)

// SampleMeta returns a two-section form with one control of every built-in
// type. The tree is valid as returned: id_2 is required and set to 10.
func SampleMeta() model.FormMeta {
	lower, upper := 0.0, 100.0
	options := []model.Option{
		{ID: "opt1", Label: "Option 1"},
		{ID: "opt2", Label: "Option 2", Children: []model.Option{
			{ID: "opt2a", Label: "Option 2a"},
		}},
	}
	return model.FormMeta{
		ControlSections: []model.ControlSection{
			{
				Label:         "General",
				Description:   "Basic settings",
				Documentation: `<p>Read the <a href="https://example.com/docs">docs</a>.</p><script>alert(1)</script>`,
				ControlGroups: []model.ControlGroup{},
			},
			{
				Label:       "Inputs",
				Collapsible: true,
				ControlGroups: []model.ControlGroup{
					{
						Label: "Numbers",
						Controls: []model.Control{
							{Name: "id_1", Label: "First", Type: model.ControlTypeNumber, HelpText: "Optional number"},
							{Name: "id_2", Label: "Second", Type: model.ControlTypeNumber, Required: true, Value: 10.0, Min: &lower, Max: &upper},
						},
					},
					{
						Label: "Selects",
						Controls: []model.Control{
							{Name: "id_3", Label: "Third", Type: model.ControlTypeMultiSelect, Options: options, Value: []string{"opt1", "opt2"}},
							{Name: "id_4", Label: "Fourth", Type: model.ControlTypeSelect, Options: options, Value: "opt1"},
							{Name: "id_5", Label: "Fifth", Type: model.ControlTypeMultiSelect, Options: options},
						},
					},
				},
			},
		},
	}
}

// MustReadGolden reads a golden file or fails the test.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString is MustReadGolden returning a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput runs render against a buffer and returns both the
// returned string and what was written.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
