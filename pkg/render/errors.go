package render

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

var (
	// ErrRendererNotFound is returned by Registry.Get for unknown names.
	ErrRendererNotFound = errors.New("render: renderer not found")
	// ErrDuplicateRenderer is returned when a name is registered twice.
	ErrDuplicateRenderer = errors.New("render: renderer already registered")
	// ErrInvalidRenderer is returned for nil or unnamed renderers.
	ErrInvalidRenderer = errors.New("render: invalid renderer")
	// ErrMissingTranslator is passed to MissingTranslationHandler when labels
	// are localised without a Translator.
	ErrMissingTranslator = errors.New("render: translator not configured")
)

// ErrorMapping splits a server error payload into control-level and
// form-level messages.
type ErrorMapping struct {
	Controls map[string][]string
	Form     []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload assigns server error messages to the controls of meta.
// Keys may be bare control names or JSON pointer / dotted paths such as
// "/body/quantity" or "data.items[0].size"; the deepest segment naming a
// control wins. Anything unmatched is kept as a form-level error.
func MapErrorPayload(meta model.FormMeta, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Controls: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Controls = nil
		return mapping
	}

	names := make(map[string]struct{})
	meta.Walk(func(_ model.Ref, control model.Control) bool {
		if name := strings.TrimSpace(control.Name); name != "" {
			names[name] = struct{}{}
		}
		return true
	})

	for _, key := range sortedKeys(payload) {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		name, ok := matchControl(key, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Controls[name] = normalizeMessages(append(mapping.Controls[name], messages...))
	}

	if len(mapping.Controls) == 0 {
		mapping.Controls = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func matchControl(raw string, names map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	if _, ok := names[trimmed]; ok {
		return trimmed, true
	}

	segments := pathSegments(trimmed)
	for i := len(segments) - 1; i >= 0; i-- {
		if _, err := strconv.Atoi(segments[i]); err == nil {
			continue
		}
		if _, ok := names[segments[i]]; ok {
			return segments[i], true
		}
	}
	return "", false
}

func pathSegments(path string) []string {
	clean := strings.TrimLeft(path, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors":
		return true
	default:
		return false
	}
}
