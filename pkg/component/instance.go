package component

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-phractal/pkg/prop"
)

// Instance is a definition bound to validated field values. Instances are
// immutable after construction; prop slots materialise lazily on first read
// and belong exclusively to the instance.
type Instance struct {
	def    *Definition
	values map[string]any
	props  map[string]prop.Value
}

// Instantiate validates the supplied values against the declared schema and
// binds them into a new instance. Any conformance failure, missing required
// field, or undeclared key fails with ValidationError and produces no
// instance.
func (d *Definition) Instantiate(values map[string]any) (*Instance, error) {
	for _, key := range sortedKeys(values) {
		if !d.HasField(key) {
			return nil, &ValidationError{
				Component: d.name,
				Name:      key,
				Value:     values[key],
				Reason:    "value supplied for undeclared field",
			}
		}
	}

	bound := make(map[string]any, len(d.fields))
	for _, field := range d.fields {
		value, ok := values[field.Name]
		if !ok {
			if field.Default != nil {
				bound[field.Name] = field.Default
				continue
			}
			if field.Required {
				return nil, &ValidationError{
					Component: d.name,
					Name:      field.Name,
					Type:      field.Type,
					Reason:    "required field is missing",
				}
			}
			continue
		}
		if err := CheckValue(field.Type, value); err != nil {
			return nil, &ValidationError{
				Component: d.name,
				Name:      field.Name,
				Type:      field.Type,
				Value:     value,
				Reason:    err.Error(),
			}
		}
		bound[field.Name] = value
	}

	inst := &Instance{
		def:    d,
		values: bound,
		props:  make(map[string]prop.Value, len(d.props)),
	}

	for name, decl := range d.props {
		inst.props[name] = inst.bindProp(decl)
	}

	return inst, nil
}

func (inst *Instance) bindProp(decl propDecl) prop.Value {
	compute := func() (any, error) {
		return decl.compute(inst)
	}
	if decl.plain {
		return prop.Plain(compute)
	}

	validate := func(value any) error {
		if err := CheckValue(decl.typ, value); err != nil {
			return &ValidationError{
				Component: inst.def.name,
				Name:      decl.name,
				Type:      decl.typ,
				Value:     value,
				Reason:    err.Error(),
			}
		}
		return nil
	}
	return prop.Lazy(compute, validate)
}

// Definition returns the definition this instance was built from.
func (inst *Instance) Definition() *Definition {
	return inst.def
}

// ComponentName satisfies Renderable.
func (inst *Instance) ComponentName() string {
	return inst.def.name
}

// Field returns the bound value for a declared field.
func (inst *Instance) Field(name string) (any, bool) {
	value, ok := inst.values[name]
	return value, ok
}

// Prop evaluates a declared prop. Lazy props compute and validate on the
// first call and return the cached result afterwards.
func (inst *Instance) Prop(name string) (any, error) {
	value, ok := inst.props[name]
	if !ok {
		return nil, &TemplateError{
			Component: inst.def.name,
			Name:      name,
			Reason:    "prop is not declared",
		}
	}
	return value.Get()
}

// Lookup resolves a template reference: declared fields win, then props. The
// second return reports whether the name resolved at all.
func (inst *Instance) Lookup(name string) (any, bool, error) {
	if value, ok := inst.values[name]; ok {
		return value, true, nil
	}
	if inst.def.HasField(name) {
		// Optional field with no value and no fallback.
		return nil, true, nil
	}
	if _, ok := inst.props[name]; ok {
		value, err := inst.Prop(name)
		if err != nil {
			return nil, true, err
		}
		return value, true, nil
	}
	return nil, false, nil
}

func sortedKeys(values map[string]any) []string {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// String renders nothing; instances render through pkg/render. Implemented so
// misuse in formatting verbs stays obvious instead of dumping internals.
func (inst *Instance) String() string {
	return fmt.Sprintf("component<%s>", inst.def.name)
}
