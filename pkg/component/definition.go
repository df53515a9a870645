// Package component defines declarative HTML components: a named schema of
// typed fields plus a template string, instantiated with validated values and
// rendered by pkg/render. The template lives in its own slot on the
// definition, so field names never collide with reserved attributes, and
// every name the template references is checked against the declared fields
// and props when the definition is built rather than during rendering.
package component

import (
	"fmt"
	"strings"
)

// PropCompute derives a value from an instance. Lazy props run it once per
// instance and cache the validated result; plain props run it on every read.
type PropCompute func(*Instance) (any, error)

type propDecl struct {
	name    string
	typ     FieldType
	compute PropCompute
	plain   bool
}

// Definition pairs a declared field schema with a template. Definitions are
// immutable once built and safe to share across instances.
type Definition struct {
	name      string
	template  string
	fields    []Field
	byName    map[string]int
	props     map[string]propDecl
	externals map[string]struct{}
	refs      []string
}

// Option configures a definition before validation runs.
type Option func(*builder)

type builder struct {
	template  string
	fields    []Field
	props     []propDecl
	externals []string
}

// WithTemplate sets the template string.
func WithTemplate(template string) Option {
	return func(b *builder) {
		b.template = template
	}
}

// WithField declares a required typed field.
func WithField(name string, t FieldType) Option {
	return func(b *builder) {
		b.fields = append(b.fields, Field{Name: strings.TrimSpace(name), Type: t, Required: true})
	}
}

// WithOptionalField declares a field that may be omitted at instantiation.
// A non-nil fallback is validated against the field type when the definition
// is built and substituted for missing values.
func WithOptionalField(name string, t FieldType, fallback any) Option {
	return func(b *builder) {
		b.fields = append(b.fields, Field{Name: strings.TrimSpace(name), Type: t, Default: fallback})
	}
}

// WithFields declares fields wholesale, e.g. from a manifest or an OpenAPI
// schema adapter.
func WithFields(fields ...Field) Option {
	return func(b *builder) {
		b.fields = append(b.fields, fields...)
	}
}

// WithProp declares a lazy prop: computed once per instance on first access,
// validated against t, and cached. Validation failures surface as
// ValidationError at access time, never while the definition is built.
func WithProp(name string, t FieldType, compute PropCompute) Option {
	return func(b *builder) {
		b.props = append(b.props, propDecl{name: strings.TrimSpace(name), typ: t, compute: compute})
	}
}

// WithPlainProp declares a prop that is recomputed on every access and
// bypasses type checking entirely.
func WithPlainProp(name string, compute PropCompute) Option {
	return func(b *builder) {
		b.props = append(b.props, propDecl{name: strings.TrimSpace(name), compute: compute, plain: true})
	}
}

// WithExternals declares names the template resolves outside the component:
// renderer globals such as "theme" or values seeded on the engine. Externals
// satisfy the reference check but are never looked up on the instance.
func WithExternals(names ...string) Option {
	return func(b *builder) {
		for _, name := range names {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				b.externals = append(b.externals, trimmed)
			}
		}
	}
}

// NewDefinition builds and validates a component definition. It fails with a
// TemplateError when the template is malformed or references a name that is
// neither a declared field nor a declared prop, and with a ValidationError
// when the field schema itself is inconsistent.
func NewDefinition(name string, options ...Option) (*Definition, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, &ValidationError{Reason: "definition name is required"}
	}

	b := &builder{}
	for _, option := range options {
		if option != nil {
			option(b)
		}
	}

	if strings.TrimSpace(b.template) == "" {
		return nil, &TemplateError{Component: trimmed, Reason: "template is required"}
	}

	def := &Definition{
		name:      trimmed,
		template:  b.template,
		byName:    make(map[string]int, len(b.fields)),
		props:     make(map[string]propDecl, len(b.props)),
		externals: make(map[string]struct{}, len(b.externals)),
	}

	for _, name := range b.externals {
		def.externals[name] = struct{}{}
	}

	for _, field := range b.fields {
		if field.Name == "" {
			return nil, &ValidationError{Component: trimmed, Reason: "field name is required"}
		}
		if !KnownFieldType(field.Type) {
			return nil, &ValidationError{
				Component: trimmed,
				Name:      field.Name,
				Type:      field.Type,
				Reason:    fmt.Sprintf("unknown field type %q", field.Type),
			}
		}
		if _, exists := def.byName[field.Name]; exists {
			return nil, &ValidationError{
				Component: trimmed,
				Name:      field.Name,
				Reason:    "field declared more than once",
			}
		}
		if field.Default != nil {
			if err := CheckValue(field.Type, field.Default); err != nil {
				return nil, &ValidationError{
					Component: trimmed,
					Name:      field.Name,
					Type:      field.Type,
					Value:     field.Default,
					Reason:    fmt.Sprintf("default %v", err),
				}
			}
			field.Required = false
		}
		def.byName[field.Name] = len(def.fields)
		def.fields = append(def.fields, field)
	}

	for _, decl := range b.props {
		if decl.name == "" {
			return nil, &ValidationError{Component: trimmed, Reason: "prop name is required"}
		}
		if decl.compute == nil {
			return nil, &ValidationError{Component: trimmed, Name: decl.name, Reason: "prop compute function is required"}
		}
		if !decl.plain && !KnownFieldType(decl.typ) {
			return nil, &ValidationError{
				Component: trimmed,
				Name:      decl.name,
				Type:      decl.typ,
				Reason:    fmt.Sprintf("unknown prop type %q", decl.typ),
			}
		}
		if _, exists := def.byName[decl.name]; exists {
			return nil, &ValidationError{
				Component: trimmed,
				Name:      decl.name,
				Reason:    "prop name collides with a declared field",
			}
		}
		if _, exists := def.props[decl.name]; exists {
			return nil, &ValidationError{
				Component: trimmed,
				Name:      decl.name,
				Reason:    "prop declared more than once",
			}
		}
		def.props[decl.name] = decl
	}

	refs, err := scanTemplate(def.template)
	if err != nil {
		if tplErr, ok := err.(*TemplateError); ok {
			tplErr.Component = trimmed
		}
		return nil, err
	}
	for _, ref := range refs {
		if _, ok := def.byName[ref]; ok {
			continue
		}
		if _, ok := def.props[ref]; ok {
			continue
		}
		if _, ok := def.externals[ref]; ok {
			continue
		}
		return nil, &TemplateError{
			Component: trimmed,
			Name:      ref,
			Reason:    "referenced name is neither a declared field nor a declared prop",
		}
	}
	def.refs = refs

	return def, nil
}

// MustDefinition panics when the definition cannot be built. Useful for
// package-level component declarations.
func MustDefinition(name string, options ...Option) *Definition {
	def, err := NewDefinition(name, options...)
	if err != nil {
		panic(err)
	}
	return def
}

// Name returns the definition name.
func (d *Definition) Name() string {
	return d.name
}

// Template returns the raw template string.
func (d *Definition) Template() string {
	return d.template
}

// Fields returns a copy of the declared fields in declaration order.
func (d *Definition) Fields() []Field {
	return append([]Field(nil), d.fields...)
}

// References returns the names the template resolved against the declared
// schema, in first-appearance order.
func (d *Definition) References() []string {
	return append([]string(nil), d.refs...)
}

// HasField reports whether name is a declared field.
func (d *Definition) HasField(name string) bool {
	_, ok := d.byName[name]
	return ok
}

// HasProp reports whether name is a declared prop.
func (d *Definition) HasProp(name string) bool {
	_, ok := d.props[name]
	return ok
}

// HasExternal reports whether name is declared as externally resolved.
func (d *Definition) HasExternal(name string) bool {
	_, ok := d.externals[name]
	return ok
}
