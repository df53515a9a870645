package component

import (
	"fmt"
	"math"
	"reflect"
)

// Renderable is implemented by values that render themselves to markup.
// Instances satisfy it; external types can too, which lets definitions nest
// components produced elsewhere.
type Renderable interface {
	ComponentName() string
}

// CheckValue reports whether value conforms to the declared field type.
// Container kinds validate the container only; element types are not
// inspected. Numeric checks accept any Go numeric kind, with integer fields
// additionally accepting floats that carry no fractional part so values
// decoded from JSON or YAML pass.
func CheckValue(t FieldType, value any) error {
	if value == nil {
		return fmt.Errorf("value is nil, want %s", t)
	}

	switch t {
	case FieldTypeString:
		if _, ok := value.(string); ok {
			return nil
		}
	case FieldTypeBoolean:
		if _, ok := value.(bool); ok {
			return nil
		}
	case FieldTypeInteger:
		if isIntegral(value) {
			return nil
		}
	case FieldTypeNumber:
		if isNumeric(value) {
			return nil
		}
	case FieldTypeArray:
		switch reflect.ValueOf(value).Kind() {
		case reflect.Slice, reflect.Array:
			return nil
		}
	case FieldTypeObject:
		switch reflect.ValueOf(value).Kind() {
		case reflect.Map, reflect.Struct:
			return nil
		}
		if reflect.ValueOf(value).Kind() == reflect.Pointer {
			if elem := reflect.ValueOf(value).Elem(); elem.IsValid() && elem.Kind() == reflect.Struct {
				return nil
			}
		}
	case FieldTypeComponent:
		if _, ok := value.(Renderable); ok {
			return nil
		}
	default:
		return fmt.Errorf("unknown field type %q", t)
	}

	return fmt.Errorf("value of type %T does not conform to %s", value, t)
}

func isNumeric(value any) bool {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func isIntegral(value any) bool {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
	default:
		return false
	}
}
