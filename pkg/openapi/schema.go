package openapi

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/goliatone/go-dynform/pkg/model"
)

const (
	enumLabelsExtension  = "x-enum-labels"
	enumNamesExtension   = "x-enumNames"
	excludeNullExtension = "x-exclude-null-option"
)

type mapper struct {
	labeler func(string) string
	logger  *zap.Logger
}

// sections fills section with one group per mappable property of schema and
// returns it followed by a section for every nested object, depth first.
func (m mapper) sections(section model.ControlSection, prefix string, schema *openapi3.Schema) []model.ControlSection {
	var nested []model.ControlSection
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	for _, key := range sortedKeys(schema.Properties) {
		ref := schema.Properties[key]
		if ref == nil || ref.Value == nil {
			continue
		}
		prop := ref.Value
		if prop.ReadOnly {
			continue
		}
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		if primaryType(prop) == openapi3.TypeObject && len(prop.Properties) > 0 {
			child := model.ControlSection{
				Label:         m.label(key, prop),
				Description:   strings.TrimSpace(prop.Description),
				Collapsible:   true,
				ControlGroups: []model.ControlGroup{},
			}
			for _, s := range m.sections(child, name, prop) {
				if len(s.ControlGroups) > 0 {
					nested = append(nested, s)
				}
			}
			continue
		}

		control, ok := m.control(name, key, prop, required[key])
		if !ok {
			m.logger.Debug("skipping unsupported property",
				zap.String("property", name),
				zap.String("type", primaryType(prop)),
			)
			continue
		}
		section.ControlGroups = append(section.ControlGroups, model.ControlGroup{
			Controls: []model.Control{control},
		})
	}
	return append([]model.ControlSection{section}, nested...)
}

func (m mapper) control(name, key string, s *openapi3.Schema, required bool) (model.Control, bool) {
	control := model.Control{
		Name:     name,
		Label:    m.label(key, s),
		Required: required,
		HelpText: strings.TrimSpace(s.Description),
	}

	kind := primaryType(s)
	switch {
	case len(s.Enum) > 0 && (kind == "" || kind == openapi3.TypeString || kind == openapi3.TypeNumber || kind == openapi3.TypeInteger):
		control.Type = model.ControlTypeSelect
		control.Options = enumOptions(s)
		control.ExcludeNullOption = boolExtension(s, excludeNullExtension)
		control.Value = scalarValue(s.Default)
	case kind == openapi3.TypeBoolean:
		control.Type = model.ControlTypeSelect
		control.Options = []model.Option{{ID: "true", Label: "Yes"}, {ID: "false", Label: "No"}}
		control.ExcludeNullOption = boolExtension(s, excludeNullExtension)
		control.Value = scalarValue(s.Default)
	case kind == openapi3.TypeNumber || kind == openapi3.TypeInteger:
		control.Type = model.ControlTypeNumber
		if s.Min != nil {
			lower := *s.Min
			control.Min = &lower
		}
		if s.Max != nil {
			upper := *s.Max
			control.Max = &upper
		}
		control.Value = s.Default
	case kind == openapi3.TypeArray && s.Items != nil && s.Items.Value != nil && len(s.Items.Value.Enum) > 0:
		control.Type = model.ControlTypeMultiSelect
		control.Options = enumOptions(s.Items.Value)
		control.Value = s.Default
	default:
		return model.Control{}, false
	}
	return control, true
}

func (m mapper) label(key string, s *openapi3.Schema) string {
	if title := strings.TrimSpace(s.Title); title != "" {
		return title
	}
	return m.labeler(key)
}

func enumOptions(s *openapi3.Schema) []model.Option {
	labels := enumLabels(s)
	options := make([]model.Option, 0, len(s.Enum))
	for idx, value := range s.Enum {
		if value == nil {
			continue
		}
		id := formatScalar(value)
		label := id
		if idx < len(labels) && labels[idx] != "" {
			label = labels[idx]
		}
		options = append(options, model.Option{ID: id, Label: label})
	}
	return options
}

func enumLabels(s *openapi3.Schema) []string {
	for _, key := range []string{enumLabelsExtension, enumNamesExtension} {
		raw, ok := s.Extensions[key].([]any)
		if !ok || len(raw) != len(s.Enum) {
			continue
		}
		labels := make([]string, len(raw))
		for i, item := range raw {
			labels[i], _ = item.(string)
		}
		return labels
	}
	return nil
}

func boolExtension(s *openapi3.Schema, key string) bool {
	value, _ := s.Extensions[key].(bool)
	return value
}

func scalarValue(value any) any {
	if value == nil {
		return nil
	}
	return formatScalar(value)
}

func formatScalar(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

// primaryType returns the first non-null type of s.
func primaryType(s *openapi3.Schema) string {
	if s == nil || s.Type == nil {
		return ""
	}
	for _, kind := range s.Type.Slice() {
		if kind != "null" {
			return kind
		}
	}
	return ""
}

func sortedKeys(props openapi3.Schemas) []string {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
