package render

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

// HiddenField is a hidden input emitted next to the controls, typically a
// CSRF token or a record identifier.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden builds a HiddenField, formatting value with fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken is Hidden for the token field a backend expects (for example
// "_csrf").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// MergeHiddenFields copies base and applies fields over it. Blank names are
// dropped and later fields win. The result is nil when nothing remains.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for name, value := range base {
		if name = strings.TrimSpace(name); name != "" {
			out[name] = value
		}
	}
	for _, field := range fields {
		if field.Name != "" {
			out[field.Name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders fields by name. Blank names are dropped.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	var out []HiddenField
	for _, name := range sortedKeys(fields) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, HiddenField{Name: trimmed, Value: fields[name]})
		}
	}
	return out
}

// FormHiddenFields returns the sorted hidden fields that can be emitted for
// meta. A field named like a control would add a second value under the
// control's key on submit, so those names are reported in shadowed instead.
func FormHiddenFields(meta model.FormMeta, fields map[string]string) (kept []HiddenField, shadowed []string) {
	controls := make(map[string]struct{})
	meta.Walk(func(_ model.Ref, control model.Control) bool {
		controls[control.Name] = struct{}{}
		return true
	})
	for _, field := range SortedHiddenFields(fields) {
		if _, clash := controls[field.Name]; clash {
			shadowed = append(shadowed, field.Name)
			continue
		}
		kept = append(kept, field)
	}
	return kept, shadowed
}

func sortedKeys[V any](in map[string]V) []string {
	return slices.Sorted(maps.Keys(in))
}
