package form

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Evaluator implements the value semantics of one control type. Renderers
// pair with evaluators through the control type tag, so adding a control type
// means registering an Evaluator and a matching renderer template.
type Evaluator interface {
	// Normalize converts a loosely typed value (for example decoded JSON or
	// YAML) into the canonical in-memory representation.
	Normalize(value any) any
	// Serialize returns the value recorded in FormData. Unset values map to
	// nil for scalar controls and an empty collection for multi-valued ones.
	Serialize(control model.Control) any
	// Coerce converts raw user input into a value.
	Coerce(control model.Control, raw []string) any
	// Prefill reports a value the control should start with when the host
	// left it unset.
	Prefill(control model.Control) (any, bool)
}

type numberEvaluator struct{}

// NumberEvaluator handles number controls. Values are float64; blank or
// non-numeric input becomes nil.
func NumberEvaluator() Evaluator { return numberEvaluator{} }

func (numberEvaluator) Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case float32:
		return numberEvaluator{}.Normalize(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case json.Number:
		return parseNumber(v.String())
	case string:
		return parseNumber(v)
	case *float64:
		if v == nil {
			return nil
		}
		return numberEvaluator{}.Normalize(*v)
	default:
		return nil
	}
}

func (e numberEvaluator) Serialize(control model.Control) any {
	value := e.Normalize(control.Value)
	if model.IsEmpty(value) {
		return nil
	}
	return value
}

func (numberEvaluator) Coerce(_ model.Control, raw []string) any {
	if len(raw) == 0 {
		return nil
	}
	return parseNumber(raw[0])
}

func (numberEvaluator) Prefill(model.Control) (any, bool) { return nil, false }

func parseNumber(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return nil
	}
	return value
}

type selectEvaluator struct{}

// SelectEvaluator handles single-value select controls. "" means no
// selection and serialises to nil.
func SelectEvaluator() Evaluator { return selectEvaluator{} }

func (selectEvaluator) Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		return v
	case float64:
		return formatNumber(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func (e selectEvaluator) Serialize(control model.Control) any {
	value := e.Normalize(control.Value)
	if model.IsEmpty(value) {
		return nil
	}
	return value
}

func (selectEvaluator) Coerce(_ model.Control, raw []string) any {
	if len(raw) == 0 {
		return ""
	}
	return raw[0]
}

func (e selectEvaluator) Prefill(control model.Control) (any, bool) {
	if !control.ExcludeNullOption || len(control.Options) == 0 {
		return nil, false
	}
	if !model.IsEmpty(e.Normalize(control.Value)) {
		return nil, false
	}
	return control.Options[0].ID, true
}

type multiSelectEvaluator struct{}

// MultiSelectEvaluator handles multiselect controls. Values are []string and
// an unset control serialises to an empty slice.
func MultiSelectEvaluator() Evaluator { return multiSelectEvaluator{} }

func (multiSelectEvaluator) Normalize(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item == nil {
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return []string{fmt.Sprint(v)}
	}
}

func (e multiSelectEvaluator) Serialize(control model.Control) any {
	values, _ := e.Normalize(control.Value).([]string)
	if values == nil {
		return []string{}
	}
	return values
}

func (multiSelectEvaluator) Coerce(_ model.Control, raw []string) any {
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		if value == "" {
			continue
		}
		out = append(out, value)
	}
	return out
}

func (multiSelectEvaluator) Prefill(model.Control) (any, bool) { return nil, false }

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
