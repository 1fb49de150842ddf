package openapi

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "settings.yaml"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func ptr(v float64) *float64 { return &v }

func TestFromOperation_MapsRequestBody(t *testing.T) {
	meta, err := FromOperation(context.Background(), loadFixture(t), "updateSettings")
	if err != nil {
		t.Fatalf("from operation: %v", err)
	}

	single := func(c model.Control) model.ControlGroup {
		return model.ControlGroup{Controls: []model.Control{c}}
	}
	want := model.FormMeta{ControlSections: []model.ControlSection{
		{
			Label:       "Update settings",
			Description: "Adjust service settings.",
			ControlGroups: []model.ControlGroup{
				single(model.Control{
					Name:    "features",
					Label:   "Features",
					Type:    model.ControlTypeMultiSelect,
					Options: []model.Option{{ID: "beta", Label: "beta"}, {ID: "audit", Label: "audit"}},
				}),
				single(model.Control{
					Name:     "max_retries",
					Label:    "Max retries",
					Type:     model.ControlTypeNumber,
					Required: true,
					Min:      ptr(0),
					Max:      ptr(10),
					Value:    3.0,
				}),
				single(model.Control{
					Name:     "region",
					Label:    "Region",
					Type:     model.ControlTypeSelect,
					Required: true,
					HelpText: "Deployment region",
					Options:  []model.Option{{ID: "eu", Label: "Europe"}, {ID: "us", Label: "United States"}},
				}),
				single(model.Control{
					Name:    "verbose",
					Label:   "Verbose",
					Type:    model.ControlTypeSelect,
					Options: []model.Option{{ID: "true", Label: "Yes"}, {ID: "false", Label: "No"}},
					Value:   "false",
				}),
			},
		},
		{
			Label:       "Limits",
			Description: "Rate limits",
			Collapsible: true,
			ControlGroups: []model.ControlGroup{
				single(model.Control{Name: "limits.burst", Label: "Burst", Type: model.ControlTypeNumber}),
				single(model.Control{Name: "limits.perMinute", Label: "Per minute", Type: model.ControlTypeNumber, Min: ptr(1)}),
			},
		},
	}}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}

	if err := model.Validate(meta); err != nil {
		t.Fatalf("imported meta should validate: %v", err)
	}
	if form.FormValid(meta) {
		t.Fatalf("expected form to be invalid until region is chosen")
	}
}

func TestOperations_ListsEveryOperation(t *testing.T) {
	ops, err := New().Operations(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	type summary struct {
		ID, Method, Path string
		HasBody          bool
	}
	got := make([]summary, 0, len(ops))
	for _, op := range ops {
		got = append(got, summary{op.ID, op.Method, op.Path, op.HasBody})
	}
	want := []summary{
		{"post:/ping", "POST", "/ping", false},
		{"getSettings", "GET", "/settings", false},
		{"updateSettings", "PUT", "/settings", true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("operations mismatch (-want +got):\n%s", diff)
	}
}

func TestFromOperation_Errors(t *testing.T) {
	data := loadFixture(t)

	if _, err := FromOperation(context.Background(), data, "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
	if _, err := FromOperation(context.Background(), data, "getSettings"); !errors.Is(err, ErrNoRequestBody) {
		t.Fatalf("expected ErrNoRequestBody, got %v", err)
	}
	if _, err := FromOperation(context.Background(), []byte("not: [valid"), "x"); err == nil {
		t.Fatalf("expected malformed document to fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FromOperation(ctx, data, "updateSettings"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestImporter_Options(t *testing.T) {
	importer := New(
		WithLabeler(func(name string) string { return "field " + name }),
		WithSectionLabel(func(op Operation) string { return op.Method + " " + op.Path }),
	)
	meta, err := importer.FromOperation(context.Background(), loadFixture(t), "updateSettings")
	if err != nil {
		t.Fatalf("from operation: %v", err)
	}
	if got := meta.ControlSections[0].Label; got != "PUT /settings" {
		t.Fatalf("section label = %q", got)
	}
	first, _ := meta.Control(model.Ref{})
	if first.Label != "field features" {
		t.Fatalf("labeler not applied: %q", first.Label)
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"max_retries": "Max retries",
		"retryPolicy": "Retry policy",
		"userID":      "User ID",
		"HTTPServer":  "HTTP server",
		"a":           "A",
		"":            "",
	}
	for in, want := range tests {
		if got := Humanize(in); got != want {
			t.Errorf("Humanize(%q) = %q, want %q", in, got, want)
		}
	}
}
