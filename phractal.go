// Package phractal is a small document-templating layer: components pair a
// declared, typed field schema with a Jinja-style template and render to
// HTML, including components nested inside other components. The heavy
// lifting is delegated to a pongo2-backed template engine and the declared
// type checks in pkg/component; this package wires the pieces together and
// offers a convenience surface over them.
package phractal

import (
	"context"
	"sync"

	"github.com/goliatone/go-phractal/pkg/component"
	"github.com/goliatone/go-phractal/pkg/render"
)

// Re-exports so simple callers need only this package.
type (
	Definition  = component.Definition
	Field       = component.Field
	FieldType   = component.FieldType
	Instance    = component.Instance
	Option      = component.Option
	PropCompute = component.PropCompute
)

// Definition options, re-exported.
var (
	WithTemplate      = component.WithTemplate
	WithField         = component.WithField
	WithOptionalField = component.WithOptionalField
	WithFields        = component.WithFields
	WithProp          = component.WithProp
	WithPlainProp     = component.WithPlainProp
	WithExternals     = component.WithExternals
)

const (
	FieldTypeString    = component.FieldTypeString
	FieldTypeInteger   = component.FieldTypeInteger
	FieldTypeNumber    = component.FieldTypeNumber
	FieldTypeBoolean   = component.FieldTypeBoolean
	FieldTypeArray     = component.FieldTypeArray
	FieldTypeObject    = component.FieldTypeObject
	FieldTypeComponent = component.FieldTypeComponent
)

// NewDefinition builds and validates a component definition.
func NewDefinition(name string, options ...Option) (*Definition, error) {
	return component.NewDefinition(name, options...)
}

// MustDefinition panics when the definition cannot be built.
func MustDefinition(name string, options ...Option) *Definition {
	return component.MustDefinition(name, options...)
}

var (
	defaultOnce     sync.Once
	defaultRenderer *render.Renderer
	defaultErr      error
)

func sharedRenderer() (*render.Renderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = render.New()
	})
	return defaultRenderer, defaultErr
}

// Render renders an instance through a shared default renderer.
func Render(ctx context.Context, inst *Instance) (string, error) {
	renderer, err := sharedRenderer()
	if err != nil {
		return "", err
	}
	return renderer.Render(ctx, inst)
}

// RenderHTML renders an instance and returns the markup as bytes.
func RenderHTML(ctx context.Context, inst *Instance) ([]byte, error) {
	rendered, err := Render(ctx, inst)
	if err != nil {
		return nil, err
	}
	return []byte(rendered), nil
}

// Save renders an instance and writes the result as the entire contents of
// path.
func Save(ctx context.Context, inst *Instance, path string) error {
	renderer, err := sharedRenderer()
	if err != nil {
		return err
	}
	return renderer.Save(ctx, inst, path)
}
