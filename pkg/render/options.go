package render

import (
	"errors"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phractal/pkg/render/template"
)

// DefaultMaxDepth bounds component nesting. Templates exceeding it fail with
// a TemplateError instead of exhausting the call stack; there is no cycle
// detection beyond this bound.
const DefaultMaxDepth = 32

// Option configures a Renderer before construction.
type Option func(*config) error

type config struct {
	engine   template.TemplateRenderer
	maxDepth int
	policy   Sanitizer
	theme    *theme.RendererConfig
	globals  map[string]any
	filters  map[string]func(input any, param any) (any, error)
}

// WithEngine swaps the backing template engine.
func WithEngine(engine template.TemplateRenderer) Option {
	return func(cfg *config) error {
		if engine == nil {
			return errors.New("render: engine is required")
		}
		cfg.engine = engine
		return nil
	}
}

// WithMaxDepth overrides the nesting depth limit.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) error {
		if depth < 1 {
			return errors.New("render: max depth must be at least 1")
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithSanitizer post-processes every rendered document through the supplied
// policy. See pkg/sanitize for bluemonday-backed policies.
func WithSanitizer(policy Sanitizer) Option {
	return func(cfg *config) error {
		cfg.policy = policy
		return nil
	}
}

// WithTheme exposes a go-theme renderer configuration to every template
// under the "theme" key: name, variant, tokens, CSS variables, and a
// precomputed :root style block.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) error {
		c.theme = cfg
		return nil
	}
}

// WithGlobals seeds values available to every template regardless of the
// component being rendered.
func WithGlobals(globals map[string]any) Option {
	return func(cfg *config) error {
		if len(globals) == 0 {
			return nil
		}
		if cfg.globals == nil {
			cfg.globals = make(map[string]any, len(globals))
		}
		for key, value := range globals {
			cfg.globals[key] = value
		}
		return nil
	}
}

// WithFilter registers a template filter on the engine at construction.
func WithFilter(name string, fn func(input any, param any) (any, error)) Option {
	return func(cfg *config) error {
		if name == "" || fn == nil {
			return errors.New("render: filter name and function required")
		}
		if cfg.filters == nil {
			cfg.filters = make(map[string]func(input any, param any) (any, error))
		}
		cfg.filters[name] = fn
		return nil
	}
}
