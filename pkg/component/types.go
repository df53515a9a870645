package component

// FieldType is the simplified enum of declarable field kinds.
type FieldType string

const (
	FieldTypeString    FieldType = "string"
	FieldTypeInteger   FieldType = "integer"
	FieldTypeNumber    FieldType = "number"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeArray     FieldType = "array"
	FieldTypeObject    FieldType = "object"
	FieldTypeComponent FieldType = "component"
)

// KnownFieldType reports whether the supplied value is one of the
// declarable field kinds.
func KnownFieldType(t FieldType) bool {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeNumber,
		FieldTypeBoolean, FieldTypeArray, FieldTypeObject, FieldTypeComponent:
		return true
	default:
		return false
	}
}

// Field declares a single typed slot on a component definition. Struct fields
// are annotated so manifest loaders can serialise them directly.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Default  any       `json:"default,omitempty" yaml:"default,omitempty"`
}
