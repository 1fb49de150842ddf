package model

import (
	"math"
	"reflect"
)

// IsEmpty reports whether value fails a required check. Slices and arrays are
// empty when they have no elements. Booleans and numeric zero are always
// present. Anything else is empty when it is falsy: nil, "", NaN or a nil
// pointer, map, func or interface.
func IsEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return false
	case string:
		return v == ""
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return false
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(rv.Float())
	default:
		return false
	}
}
