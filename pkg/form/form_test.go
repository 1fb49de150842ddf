package form_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/form"
	"github.com/goliatone/go-dynform/pkg/model"
)

type recorder struct {
	changes   []model.FormMeta
	validates []bool
	confirms  []any
	submits   []model.FormData
}

func (r *recorder) options() []form.Option {
	return []form.Option{
		form.WithChangeHandler(func(meta model.FormMeta) { r.changes = append(r.changes, meta) }),
		form.WithValidateHandler(func(valid bool) { r.validates = append(r.validates, valid) }),
		form.WithConfirmHandler(func(payload any) { r.confirms = append(r.confirms, payload) }),
		form.WithSubmitHandler(func(data model.FormData) { r.submits = append(r.submits, data) }),
	}
}

func singleSelectMeta(required, excludeNull bool) model.FormMeta {
	return model.FormMeta{ControlSections: []model.ControlSection{{
		Label: "Only",
		ControlGroups: []model.ControlGroup{{
			Label: "Choice",
			Controls: []model.Control{{
				Name:              "choice",
				Label:             "Choice",
				Type:              model.ControlTypeSelect,
				Required:          required,
				ExcludeNullOption: excludeNull,
				Options:           []model.Option{{ID: "opt1", Label: "One"}, {ID: "opt2", Label: "Two"}},
			}},
		}},
	}}}
}

var choiceRef = model.Ref{Section: 0, Group: 0, Control: 0}

func TestForm_ValidateSequence(t *testing.T) {
	rec := &recorder{}
	f := form.New(singleSelectMeta(true, false), rec.options()...)

	if err := f.Input(choiceRef, "opt1"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	if err := f.Input(choiceRef); err != nil {
		t.Fatalf("Input: %v", err)
	}

	if diff := cmp.Diff([]bool{false, true, false}, rec.validates); diff != "" {
		t.Fatalf("validate sequence mismatch (-want +got):\n%s", diff)
	}
	if len(rec.changes) != 2 {
		t.Fatalf("expected 2 change events, got %d", len(rec.changes))
	}
	if f.Valid() {
		t.Fatalf("expected form to end invalid")
	}
}

func TestForm_InitialValidateOnce(t *testing.T) {
	rec := &recorder{}
	form.New(fiveControlMeta(), rec.options()...)

	if diff := cmp.Diff([]bool{true}, rec.validates); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}
	if len(rec.changes) != 0 {
		t.Fatalf("expected no change events, got %d", len(rec.changes))
	}
}

func TestForm_PrefillExcludedNullOption(t *testing.T) {
	rec := &recorder{}
	f := form.New(singleSelectMeta(true, true), rec.options()...)

	if len(rec.changes) != 1 {
		t.Fatalf("expected one change event from prefill, got %d", len(rec.changes))
	}
	got, _ := rec.changes[0].Control(choiceRef)
	if got.Value != "opt1" {
		t.Fatalf("expected prefilled opt1, got %#v", got.Value)
	}
	if diff := cmp.Diff([]bool{true}, rec.validates); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}

	f.SetMeta(rec.changes[0])
	if len(rec.changes) != 1 {
		t.Fatalf("accepting the prefilled tree must not prefill again, got %d changes", len(rec.changes))
	}
}

func TestForm_DoesNotMutateHostMeta(t *testing.T) {
	meta := fiveControlMeta()
	before := meta.Clone()

	f := form.New(meta)
	if err := f.InputByName("id_2", "99"); err != nil {
		t.Fatalf("InputByName: %v", err)
	}
	if err := f.InputByName("id_5", "opt2"); err != nil {
		t.Fatalf("InputByName: %v", err)
	}

	if diff := cmp.Diff(before, meta); diff != "" {
		t.Fatalf("host meta mutated (-before +after):\n%s", diff)
	}
	data := f.Data()
	if data["id_2"] != 99.0 {
		t.Fatalf("expected id_2=99, got %#v", data["id_2"])
	}
}

func TestForm_UpdateSectionPropagates(t *testing.T) {
	rec := &recorder{}
	f := form.New(fiveControlMeta(), rec.options()...)

	section := f.Meta().ControlSections[1]
	section.ControlGroups[0].Controls[0].Value = 5.0
	if err := f.UpdateSection(1, section); err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}

	if len(rec.changes) != 1 {
		t.Fatalf("expected one change event, got %d", len(rec.changes))
	}
	got, _ := rec.changes[0].Control(model.Ref{Section: 1, Group: 0, Control: 0})
	if got.Value != 5.0 {
		t.Fatalf("expected propagated value 5, got %#v", got.Value)
	}
	if diff := cmp.Diff(rec.changes[0].ControlSections[0], fiveControlMeta().ControlSections[0]); diff != "" {
		t.Fatalf("sibling section changed (-got +want):\n%s", diff)
	}
}

func TestForm_UpdateGroupAndControl(t *testing.T) {
	rec := &recorder{}
	f := form.New(fiveControlMeta(), rec.options()...)

	group := f.Meta().ControlSections[1].ControlGroups[0]
	group.Controls[1].Value = nil
	if err := f.UpdateGroup(1, 0, group); err != nil {
		t.Fatalf("UpdateGroup: %v", err)
	}
	if diff := cmp.Diff([]bool{true, false}, rec.validates); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}

	control := group.Controls[1]
	control.Value = 3
	if err := f.UpdateControl(model.Ref{Section: 1, Group: 0, Control: 1}, control); err != nil {
		t.Fatalf("UpdateControl: %v", err)
	}
	if diff := cmp.Diff([]bool{true, false, true}, rec.validates); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}
	if got := f.Data()["id_2"]; got != 3.0 {
		t.Fatalf("expected normalised 3.0, got %#v", got)
	}
}

func TestForm_OutOfRange(t *testing.T) {
	f := form.New(fiveControlMeta())

	if err := f.UpdateSection(9, model.ControlSection{}); !errors.Is(err, form.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := f.UpdateGroup(0, 0, model.ControlGroup{}); !errors.Is(err, form.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := f.Input(model.Ref{Section: 1, Group: 5}, "1"); !errors.Is(err, form.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if err := f.InputByName("missing", "1"); !errors.Is(err, form.ErrControlNotFound) {
		t.Fatalf("expected ErrControlNotFound, got %v", err)
	}
}

func TestForm_ConfirmPassThrough(t *testing.T) {
	rec := &recorder{}
	f := form.New(fiveControlMeta(), rec.options()...)

	payload := map[string]any{"action": "delete", "id": 7}
	f.Confirm(payload)

	if diff := cmp.Diff([]any{payload}, rec.confirms); diff != "" {
		t.Fatalf("confirm mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SubmitEmitsAndReturns(t *testing.T) {
	rec := &recorder{}
	f := form.New(fiveControlMeta(), rec.options()...)

	data := f.Submit()
	if len(rec.submits) != 1 {
		t.Fatalf("expected one submit event, got %d", len(rec.submits))
	}
	if diff := cmp.Diff(data, rec.submits[0]); diff != "" {
		t.Fatalf("submit payload mismatch (-returned +emitted):\n%s", diff)
	}
	if diff := cmp.Diff([]string{}, data["id_5"]); diff != "" {
		t.Fatalf("unset multiselect mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_SetMetaValidateOnlyOnToggle(t *testing.T) {
	rec := &recorder{}
	f := form.New(fiveControlMeta(), rec.options()...)

	f.SetMeta(fiveControlMeta())
	if diff := cmp.Diff([]bool{true}, rec.validates); diff != "" {
		t.Fatalf("unchanged validity must not emit (-want +got):\n%s", diff)
	}

	invalid := fiveControlMeta()
	invalid.ControlSections[1].ControlGroups[0].Controls[1].Value = nil
	f.SetMeta(invalid)
	if diff := cmp.Diff([]bool{true, false}, rec.validates); diff != "" {
		t.Fatalf("validate mismatch (-want +got):\n%s", diff)
	}
	if len(rec.changes) != 0 {
		t.Fatalf("SetMeta must not emit change, got %d", len(rec.changes))
	}
}

func TestForm_SectionStateSurvivesEdits(t *testing.T) {
	meta := fiveControlMeta()
	meta.ControlSections[1].Collapsible = true
	meta.ControlSections[1].Collapsed = true

	f := form.New(meta)
	state, ok := f.SectionState(1)
	if !ok || !state.Collapsed {
		t.Fatalf("expected section to start collapsed, got %+v", state)
	}

	collapsed, err := f.ToggleSection(1)
	if err != nil || collapsed {
		t.Fatalf("expected expanded after toggle, got collapsed=%v err=%v", collapsed, err)
	}
	if open, _ := f.ToggleDocumentation(1); !open {
		t.Fatalf("expected documentation open")
	}

	if err := f.InputByName("id_1", "4"); err != nil {
		t.Fatalf("InputByName: %v", err)
	}
	f.SetMeta(meta)

	want := form.SectionState{Collapsed: false, DocumentationOpen: true}
	got, _ := f.SectionState(1)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("section state mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ToggleNonCollapsibleSection(t *testing.T) {
	meta := fiveControlMeta()
	meta.ControlSections[0].Collapsed = true

	f := form.New(meta)
	if state, _ := f.SectionState(0); state.Collapsed {
		t.Fatalf("non-collapsible section must start expanded")
	}
	if collapsed, _ := f.ToggleSection(0); collapsed {
		t.Fatalf("non-collapsible section must stay expanded")
	}
}

func TestForm_HandlerMayReenter(t *testing.T) {
	var f *form.Form
	host := singleSelectMeta(true, false)
	f = form.New(host, form.WithChangeHandler(func(next model.FormMeta) {
		host = next
		if f != nil {
			f.SetMeta(host)
		}
	}))

	if err := f.Input(choiceRef, "opt2"); err != nil {
		t.Fatalf("Input: %v", err)
	}
	got, _ := host.Control(choiceRef)
	if got.Value != "opt2" {
		t.Fatalf("expected host to hold opt2, got %#v", got.Value)
	}
	if !f.Valid() {
		t.Fatalf("expected form valid after reentrant update")
	}
}

func TestForm_ConfigDefaults(t *testing.T) {
	f := form.New(model.FormMeta{}, form.WithConfig(form.Config{IncludeSubmitButton: false}))
	want := form.Config{
		ID:                  form.DefaultID,
		IncludeSubmitButton: false,
		SubmitText:          form.DefaultSubmitText,
		RequiredText:        form.DefaultRequiredText,
		SelectText:          form.DefaultSelectText,
		DocumentationText:   form.DefaultDocumentationText,
	}
	if diff := cmp.Diff(want, f.Config()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}
