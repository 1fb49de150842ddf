package model

import (
	"encoding/json"
	"math"
)

// The guards below accept decoded JSON/YAML documents (map[string]any and
// []any) as well as typed values, which are projected through encoding/json
// first. They report false on any shape mismatch and never panic.

// IsControl reports whether object has the shape shared by every control: a
// string name, a known type and a boolean required flag.
func IsControl(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isControlObject(m)
}

// IsNumberControl reports whether object is a number control.
func IsNumberControl(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isControlObject(m) && m["type"] == string(ControlTypeNumber) && isNumberControlObject(m)
}

// IsSelectControl reports whether object is a single-value select control.
func IsSelectControl(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isControlObject(m) && m["type"] == string(ControlTypeSelect) && isSelectControlObject(m)
}

// IsMultiSelectControl reports whether object is a multiselect control.
func IsMultiSelectControl(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isControlObject(m) && m["type"] == string(ControlTypeMultiSelect) && isMultiSelectControlObject(m)
}

// IsSelectOption reports whether object is an option with string id and
// label and, when present, a list of valid child options.
func IsSelectOption(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isOptionObject(m)
}

// IsDynamicControlGroup reports whether object is a group of valid controls.
func IsDynamicControlGroup(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isGroupObject(m)
}

// IsDynamicControlSection reports whether object is a labelled section of
// valid groups.
func IsDynamicControlSection(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	return isSectionObject(m)
}

// IsDynamicFormMeta reports whether object is a form metadata tree.
func IsDynamicFormMeta(object any) bool {
	m, ok := asObject(object)
	if !ok {
		return false
	}
	sections, ok := m["controlSections"].([]any)
	if !ok {
		return false
	}
	for _, section := range sections {
		sm, ok := section.(map[string]any)
		if !ok || !isSectionObject(sm) {
			return false
		}
	}
	return true
}

func isControlObject(m map[string]any) bool {
	if _, ok := m["name"].(string); !ok {
		return false
	}
	if _, ok := m["required"].(bool); !ok {
		return false
	}
	kind, ok := m["type"].(string)
	if !ok || !ControlType(kind).Valid() {
		return false
	}
	if !optionalString(m, "label") || !optionalString(m, "helpText") {
		return false
	}
	switch ControlType(kind) {
	case ControlTypeNumber:
		return isNumberControlObject(m)
	case ControlTypeSelect:
		return isSelectControlObject(m)
	default:
		return isMultiSelectControlObject(m)
	}
}

func isNumberControlObject(m map[string]any) bool {
	if !optionalNumber(m, "min") || !optionalNumber(m, "max") {
		return false
	}
	value, present := m["value"]
	if !present || value == nil {
		return true
	}
	_, ok := asNumber(value)
	return ok
}

func isSelectControlObject(m map[string]any) bool {
	if !isOptionList(m["options"]) || !optionalBool(m, "excludeNullOption") {
		return false
	}
	value, present := m["value"]
	if !present || value == nil {
		return true
	}
	_, ok := value.(string)
	return ok
}

func isMultiSelectControlObject(m map[string]any) bool {
	if !isOptionList(m["options"]) {
		return false
	}
	value, present := m["value"]
	if !present || value == nil {
		return true
	}
	items, ok := value.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

func isOptionList(raw any) bool {
	items, ok := raw.([]any)
	if !ok {
		return false
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok || !isOptionObject(m) {
			return false
		}
	}
	return true
}

func isOptionObject(m map[string]any) bool {
	if _, ok := m["id"].(string); !ok {
		return false
	}
	if _, ok := m["label"].(string); !ok {
		return false
	}
	children, present := m["children"]
	if !present || children == nil {
		return true
	}
	return isOptionList(children)
}

func isGroupObject(m map[string]any) bool {
	if !optionalString(m, "label") {
		return false
	}
	controls, ok := m["controls"].([]any)
	if !ok {
		return false
	}
	for _, control := range controls {
		cm, ok := control.(map[string]any)
		if !ok || !isControlObject(cm) {
			return false
		}
	}
	return true
}

func isSectionObject(m map[string]any) bool {
	if _, ok := m["label"].(string); !ok {
		return false
	}
	if !optionalString(m, "description") || !optionalString(m, "documentation") {
		return false
	}
	if !optionalBool(m, "collapsible") || !optionalBool(m, "collapsed") {
		return false
	}
	groups, ok := m["controlGroups"].([]any)
	if !ok {
		return false
	}
	for _, group := range groups {
		gm, ok := group.(map[string]any)
		if !ok || !isGroupObject(gm) {
			return false
		}
	}
	return true
}

func optionalString(m map[string]any, key string) bool {
	raw, present := m[key]
	if !present || raw == nil {
		return true
	}
	_, ok := raw.(string)
	return ok
}

func optionalBool(m map[string]any, key string) bool {
	raw, present := m[key]
	if !present || raw == nil {
		return true
	}
	_, ok := raw.(bool)
	return ok
}

func optionalNumber(m map[string]any, key string) bool {
	raw, present := m[key]
	if !present || raw == nil {
		return true
	}
	_, ok := asNumber(raw)
	return ok
}

func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsInf(v, 0)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// asObject projects object onto the generic map form used by the guards.
func asObject(object any) (map[string]any, bool) {
	switch v := object.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return v, true
	}
	generic, ok := toGeneric(object)
	if !ok {
		return nil, false
	}
	m, ok := generic.(map[string]any)
	return m, ok
}

func toGeneric(object any) (generic any, ok bool) {
	defer func() {
		if recover() != nil {
			generic, ok = nil, false
		}
	}()
	payload, err := json.Marshal(object)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal(payload, &generic); err != nil {
		return nil, false
	}
	return generic, true
}
