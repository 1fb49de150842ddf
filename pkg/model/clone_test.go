package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/model"
)

func sampleMeta() model.FormMeta {
	return model.FormMeta{
		ControlSections: []model.ControlSection{
			{Label: "Empty", ControlGroups: []model.ControlGroup{}},
			{
				Label: "Inputs",
				ControlGroups: []model.ControlGroup{{
					Label: "Group 1",
					Controls: []model.Control{
						{Name: "id_1", Type: model.ControlTypeNumber},
						{Name: "id_2", Type: model.ControlTypeMultiSelect, Value: []string{"a"}},
					},
				}},
			},
		},
	}
}

func TestFormMeta_WithSectionDoesNotMutateReceiver(t *testing.T) {
	meta := sampleMeta()
	before := meta.Clone()

	updated := meta.WithSection(1, meta.ControlSections[1].WithGroup(0,
		meta.ControlSections[1].ControlGroups[0].WithControl(0,
			meta.ControlSections[1].ControlGroups[0].Controls[0].WithValue(12.0))))

	if diff := cmp.Diff(before, meta); diff != "" {
		t.Fatalf("receiver mutated (-before +after):\n%s", diff)
	}
	got, ok := updated.Control(model.Ref{Section: 1, Group: 0, Control: 0})
	if !ok || got.Value != 12.0 {
		t.Fatalf("expected updated value 12, got %#v (found=%v)", got.Value, ok)
	}
}

func TestFormMeta_WithSectionOutOfRange(t *testing.T) {
	meta := sampleMeta()
	updated := meta.WithSection(5, model.ControlSection{Label: "nope"})
	if diff := cmp.Diff(meta, updated); diff != "" {
		t.Fatalf("expected unchanged meta (-want +got):\n%s", diff)
	}
}

func TestControl_CloneCopiesSliceValues(t *testing.T) {
	lower := 1.0
	control := model.Control{Name: "m", Value: []string{"a", "b"}, Min: &lower}
	clone := control.Clone()

	clone.Value.([]string)[0] = "z"
	*clone.Min = 5

	if control.Value.([]string)[0] != "a" {
		t.Fatalf("clone shares value slice with original")
	}
	if *control.Min != 1 {
		t.Fatalf("clone shares min pointer with original")
	}
}

func TestFormMeta_FindAndNames(t *testing.T) {
	meta := sampleMeta()

	ref, ok := meta.Find("id_2")
	if !ok {
		t.Fatalf("expected id_2 to be found")
	}
	if diff := cmp.Diff(model.Ref{Section: 1, Group: 0, Control: 1}, ref); diff != "" {
		t.Fatalf("ref mismatch (-want +got):\n%s", diff)
	}
	if _, ok := meta.Find("missing"); ok {
		t.Fatalf("expected missing control not to be found")
	}
	if diff := cmp.Diff([]string{"id_1", "id_2"}, meta.ControlNames()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenOptions(t *testing.T) {
	options := []model.Option{
		{ID: "fruit", Label: "Fruit", Children: []model.Option{
			{ID: "apple", Label: "Apple"},
			{ID: "pear", Label: "Pear"},
		}},
		{ID: "veg", Label: "Veg"},
	}

	want := []model.FlatOption{
		{ID: "fruit", Label: "Fruit", Depth: 0},
		{ID: "apple", Label: "Apple", Depth: 1},
		{ID: "pear", Label: "Pear", Depth: 1},
		{ID: "veg", Label: "Veg", Depth: 0},
	}
	if diff := cmp.Diff(want, model.FlattenOptions(options)); diff != "" {
		t.Fatalf("flatten mismatch (-want +got):\n%s", diff)
	}
	if !model.HasOption(options, "pear") || model.HasOption(options, "kiwi") {
		t.Fatalf("HasOption mismatch")
	}
}
