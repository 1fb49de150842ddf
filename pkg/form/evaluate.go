package form

import "github.com/goliatone/go-dynform/pkg/model"

// ControlValid reports whether a control satisfies its required flag.
func ControlValid(control model.Control) bool {
	return !control.Required || !model.IsEmpty(control.Value)
}

// GroupValid reports whether every control in the group is valid. An empty
// group is valid.
func GroupValid(group model.ControlGroup) bool {
	for _, control := range group.Controls {
		if !ControlValid(control) {
			return false
		}
	}
	return true
}

// SectionValid reports whether every group in the section is valid.
func SectionValid(section model.ControlSection) bool {
	for _, group := range section.ControlGroups {
		if !GroupValid(group) {
			return false
		}
	}
	return true
}

// FormValid reports whether every section is valid. A form without sections
// is valid.
func FormValid(meta model.FormMeta) bool {
	for _, section := range meta.ControlSections {
		if !SectionValid(section) {
			return false
		}
	}
	return true
}

// ColumnWidth returns the grid span each control in the group receives: 6
// for a lone control, 3 each for a pair, and an even split (at least 1)
// beyond that.
func ColumnWidth(group model.ControlGroup) int {
	n := len(group.Controls)
	if n <= 1 {
		return 6
	}
	if width := 6 / n; width > 0 {
		return width
	}
	return 1
}

// ApplyInput returns a copy of control carrying the coerced raw input.
func ApplyInput(registry *Registry, control model.Control, raw ...string) (model.Control, error) {
	evaluator, err := registry.Get(control.Type)
	if err != nil {
		return control, err
	}
	return control.WithValue(evaluator.Coerce(control, raw)), nil
}

// Serialize projects the tree onto a flat name → value record using the
// default registry.
func Serialize(meta model.FormMeta) model.FormData {
	return SerializeWith(DefaultRegistry(), meta)
}

// SerializeWith projects the tree onto a flat name → value record. Controls
// are visited in traversal order, so a later duplicate name overwrites an
// earlier one. Controls with unregistered types serialise their raw value, or
// nil when it is empty.
func SerializeWith(registry *Registry, meta model.FormMeta) model.FormData {
	data := make(model.FormData)
	meta.Walk(func(_ model.Ref, control model.Control) bool {
		evaluator, err := registry.Get(control.Type)
		if err != nil {
			if model.IsEmpty(control.Value) {
				data[control.Name] = nil
			} else {
				data[control.Name] = control.Value
			}
			return true
		}
		data[control.Name] = evaluator.Serialize(control)
		return true
	})
	return data
}
