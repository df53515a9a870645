// Package render turns component instances into HTML strings. It assembles a
// template context from an instance's declared fields and props, renders
// nested components recursively, and executes the definition's template
// through the engine seam in pkg/render/template.
package render

import (
	"context"
	"fmt"
	"reflect"

	"github.com/goliatone/go-phractal/pkg/component"
	"github.com/goliatone/go-phractal/pkg/render/template"
	"github.com/goliatone/go-phractal/pkg/render/template/gotemplate"
)

// SelfRenderer lets foreign Renderable values control their own markup when
// nested inside a component template.
type SelfRenderer interface {
	component.Renderable
	RenderHTML(ctx context.Context) (string, error)
}

// Renderer renders instances through a shared template engine. Rendering has
// no side effects; writing output to disk goes through Save.
type Renderer struct {
	engine   template.TemplateRenderer
	maxDepth int
	policy   Sanitizer
	globals  map[string]any
}

// Sanitizer post-processes rendered markup. pkg/sanitize provides bluemonday
// backed implementations.
type Sanitizer interface {
	Sanitize(html string) string
}

// New constructs a Renderer. Without options it uses a string-only pongo2
// engine, a nesting depth limit of DefaultMaxDepth, and no sanitizer.
func New(options ...Option) (*Renderer, error) {
	cfg := &config{maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	engine := cfg.engine
	if engine == nil {
		var err error
		engine, err = gotemplate.New()
		if err != nil {
			return nil, fmt.Errorf("render: construct default engine: %w", err)
		}
	}

	globals := cfg.globals
	if cfg.theme != nil {
		if globals == nil {
			globals = make(map[string]any, 1)
		}
		globals["theme"] = themeContext(cfg.theme)
	}
	if len(globals) > 0 {
		if err := engine.GlobalContext(globals); err != nil {
			return nil, fmt.Errorf("render: seed global context: %w", err)
		}
	}

	for name, fn := range cfg.filters {
		if err := engine.RegisterFilter(name, fn); err != nil {
			return nil, fmt.Errorf("render: register filter %q: %w", name, err)
		}
	}

	return &Renderer{
		engine:   engine,
		maxDepth: cfg.maxDepth,
		policy:   cfg.policy,
		globals:  globals,
	}, nil
}

// Render produces the instance's HTML. Field values substitute verbatim,
// props evaluate through their declared contracts, and nested components
// embed as their own rendered output with no residual template syntax.
func (r *Renderer) Render(ctx context.Context, inst *component.Instance) (string, error) {
	if inst == nil {
		return "", ErrNilInstance
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rendered, err := r.render(ctx, inst, 0)
	if err != nil {
		return "", err
	}
	if r.policy != nil {
		rendered = r.policy.Sanitize(rendered)
	}
	return rendered, nil
}

func (r *Renderer) render(ctx context.Context, inst *component.Instance, depth int) (string, error) {
	if depth > r.maxDepth {
		return "", &component.TemplateError{
			Component: inst.ComponentName(),
			Reason:    fmt.Sprintf("nesting exceeds maximum depth %d", r.maxDepth),
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	def := inst.Definition()
	data := make(map[string]any, len(def.References()))
	for _, name := range def.References() {
		if def.HasExternal(name) {
			// Resolved by engine globals (e.g. theme context).
			continue
		}
		value, ok, err := inst.Lookup(name)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", &component.TemplateError{
				Component: def.Name(),
				Name:      name,
				Reason:    "referenced name did not resolve",
			}
		}
		resolved, err := r.resolveValue(ctx, value, depth)
		if err != nil {
			return "", err
		}
		data[name] = resolved
	}

	rendered, err := r.engine.RenderString(def.Template(), data)
	if err != nil {
		return "", &component.TemplateError{
			Component: def.Name(),
			Reason:    err.Error(),
		}
	}
	return rendered, nil
}

// resolveValue renders nested components so the parent template substitutes
// finished markup. Slices and string-keyed maps resolve element-wise; every
// other value passes through untouched.
func (r *Renderer) resolveValue(ctx context.Context, value any, depth int) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case *component.Instance:
		return r.render(ctx, v, depth+1)
	case SelfRenderer:
		return v.RenderHTML(ctx)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			resolved, err := r.resolveValue(ctx, rv.Index(i).Interface(), depth)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value, nil
		}
		out := make(map[string]any, rv.Len())
		for _, key := range rv.MapKeys() {
			resolved, err := r.resolveValue(ctx, rv.MapIndex(key).Interface(), depth)
			if err != nil {
				return nil, err
			}
			out[key.String()] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}
