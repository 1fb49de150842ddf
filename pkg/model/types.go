package model

// ControlType is the closed set of control kinds a form can describe.
type ControlType string

const (
	ControlTypeSelect      ControlType = "select"
	ControlTypeNumber      ControlType = "number"
	ControlTypeMultiSelect ControlType = "multiselect"
)

// ControlTypes lists the built-in control types in declaration order.
func ControlTypes() []ControlType {
	return []ControlType{ControlTypeSelect, ControlTypeNumber, ControlTypeMultiSelect}
}

// Valid reports whether t is one of the built-in control types.
func (t ControlType) Valid() bool {
	switch t {
	case ControlTypeSelect, ControlTypeNumber, ControlTypeMultiSelect:
		return true
	default:
		return false
	}
}

// Option is a single selectable choice. Children describe a nested option
// tree; selection operates on the flattened list (see FlattenOptions).
type Option struct {
	ID       string   `json:"id" yaml:"id" validate:"required"`
	Label    string   `json:"label" yaml:"label"`
	Children []Option `json:"children,omitempty" yaml:"children,omitempty" validate:"dive"`
}

// Control is a leaf input definition. Type discriminates which of the
// type-specific fields apply: Options and ExcludeNullOption for select and
// multiselect controls, Min and Max for number controls.
//
// Value holds the current value. Evaluators normalise it to float64 for
// number controls, string for select controls and []string for multiselect
// controls; nil (or "") means unset.
type Control struct {
	Name     string      `json:"name" yaml:"name" validate:"required"`
	Label    string      `json:"label,omitempty" yaml:"label,omitempty"`
	Type     ControlType `json:"type" yaml:"type" validate:"required,oneof=select number multiselect"`
	Required bool        `json:"required" yaml:"required"`
	HelpText string      `json:"helpText,omitempty" yaml:"helpText,omitempty"`
	Value    any         `json:"value,omitempty" yaml:"value,omitempty"`

	Options           []Option `json:"options,omitempty" yaml:"options,omitempty" validate:"dive"`
	ExcludeNullOption bool     `json:"excludeNullOption,omitempty" yaml:"excludeNullOption,omitempty"`

	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

// ControlGroup is a layout unit holding controls. It has no identity beyond
// its position in the tree.
type ControlGroup struct {
	Label    string    `json:"label,omitempty" yaml:"label,omitempty"`
	Controls []Control `json:"controls" yaml:"controls" validate:"dive"`
}

// ControlSection aggregates groups. Collapsible and Collapsed are display
// hints; Collapsed only seeds the initial state.
type ControlSection struct {
	Label         string         `json:"label" yaml:"label" validate:"required"`
	Description   string         `json:"description,omitempty" yaml:"description,omitempty"`
	Documentation string         `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Collapsible   bool           `json:"collapsible,omitempty" yaml:"collapsible,omitempty"`
	Collapsed     bool           `json:"collapsed,omitempty" yaml:"collapsed,omitempty"`
	ControlGroups []ControlGroup `json:"controlGroups" yaml:"controlGroups" validate:"dive"`
}

// FormMeta is the root of the metadata tree. Hosts own it; the form package
// never mutates a FormMeta it did not construct.
type FormMeta struct {
	ControlSections []ControlSection `json:"controlSections" yaml:"controlSections" validate:"dive"`
}

// FormData is the serialised form: one entry per control name. Values are
// string, float64, []string or nil.
type FormData map[string]any

// Ref addresses a control by position.
type Ref struct {
	Section int `json:"section"`
	Group   int `json:"group"`
	Control int `json:"control"`
}
