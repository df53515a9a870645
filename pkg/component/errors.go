package component

import "fmt"

// ValidationError reports a field or prop value that does not conform to its
// declared type, or a value set that does not match the declared schema.
type ValidationError struct {
	Component string
	Name      string
	Type      FieldType
	Value     any
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("component %s: validation: %s", e.Component, e.Reason)
	}
	return fmt.Sprintf("component %s: validation: field %q: %s", e.Component, e.Name, e.Reason)
}

// TemplateError reports a template that cannot be parsed, references a name
// that resolves to neither a declared field nor a declared prop, or exceeds
// the configured nesting depth during rendering.
type TemplateError struct {
	Component string
	Name      string
	Reason    string
}

func (e *TemplateError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("component %s: template: %s", e.Component, e.Reason)
	}
	return fmt.Sprintf("component %s: template: %q: %s", e.Component, e.Name, e.Reason)
}
