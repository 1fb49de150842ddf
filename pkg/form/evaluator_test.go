package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

func TestNumberEvaluator_Coerce(t *testing.T) {
	eval := form.NumberEvaluator()
	cases := map[string]any{
		"12.5":  12.5,
		" 3 ":   3.0,
		"":      nil,
		"abc":   nil,
		"1e309": nil,
	}
	for raw, want := range cases {
		got := eval.Coerce(model.Control{}, []string{raw})
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Coerce(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
	if got := eval.Coerce(model.Control{}, nil); got != nil {
		t.Fatalf("expected nil for missing input, got %#v", got)
	}
}

func TestNumberEvaluator_Normalize(t *testing.T) {
	eval := form.NumberEvaluator()
	cases := []struct {
		in   any
		want any
	}{
		{in: 10, want: 10.0},
		{in: int64(-2), want: -2.0},
		{in: "4.5", want: 4.5},
		{in: nil, want: nil},
		{in: true, want: nil},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, eval.Normalize(tc.in)); diff != "" {
			t.Errorf("Normalize(%#v) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestSelectEvaluator_Prefill(t *testing.T) {
	eval := form.SelectEvaluator()
	control := model.Control{
		Name:              "size",
		Type:              model.ControlTypeSelect,
		ExcludeNullOption: true,
		Options:           []model.Option{{ID: "s", Label: "Small"}, {ID: "m", Label: "Medium"}},
	}

	value, ok := eval.Prefill(control)
	if !ok || value != "s" {
		t.Fatalf("expected prefill with first option, got %#v (ok=%v)", value, ok)
	}

	control.Value = "m"
	if _, ok := eval.Prefill(control); ok {
		t.Fatalf("expected no prefill when a value is set")
	}

	control.Value = nil
	control.ExcludeNullOption = false
	if _, ok := eval.Prefill(control); ok {
		t.Fatalf("expected no prefill when the null option is allowed")
	}
}

func TestSelectEvaluator_SerializeEmptyAsNil(t *testing.T) {
	eval := form.SelectEvaluator()
	if got := eval.Serialize(model.Control{Value: ""}); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	if got := eval.Serialize(model.Control{Value: "opt1"}); got != "opt1" {
		t.Fatalf("expected opt1, got %#v", got)
	}
}

func TestMultiSelectEvaluator(t *testing.T) {
	eval := form.MultiSelectEvaluator()

	if diff := cmp.Diff([]string{}, eval.Serialize(model.Control{})); diff != "" {
		t.Fatalf("unset multiselect mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "1"}, eval.Normalize([]any{"a", 1.0, nil})); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, eval.Coerce(model.Control{}, []string{"a", "", "b"})); diff != "" {
		t.Fatalf("coerce mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	reg := form.DefaultRegistry()

	want := []model.ControlType{model.ControlTypeMultiSelect, model.ControlTypeNumber, model.ControlTypeSelect}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}

	if err := reg.Register(model.ControlTypeNumber, form.NumberEvaluator()); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if _, err := reg.Get("text"); !errors.Is(err, form.ErrUnknownControlType) {
		t.Fatalf("expected ErrUnknownControlType, got %v", err)
	}
	if err := reg.Register("text", nil); err == nil {
		t.Fatalf("expected nil evaluator to be rejected")
	}
}
