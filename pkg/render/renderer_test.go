package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-phractal/pkg/component"
	"github.com/goliatone/go-phractal/pkg/sanitize"
)

func newRenderer(t *testing.T, options ...Option) *Renderer {
	t.Helper()
	renderer, err := New(options...)
	if err != nil {
		t.Fatalf("construct renderer: %v", err)
	}
	return renderer
}

func TestRender_SubstitutesFieldValues(t *testing.T) {
	def := component.MustDefinition("greeting",
		component.WithTemplate("<p>Hello {{ name }}</p>"),
		component.WithField("name", component.FieldTypeString),
	)
	inst, err := def.Instantiate(map[string]any{"name": "Murderbot"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	got, err := newRenderer(t).Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>Hello Murderbot</p>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_NestedComponent(t *testing.T) {
	inner := component.MustDefinition("inner",
		component.WithTemplate("{{ some_var }}"),
		component.WithField("some_var", component.FieldTypeString),
	)
	outer := component.MustDefinition("outer",
		component.WithTemplate("<p>{{ first }}</p>"),
		component.WithField("some_var", component.FieldTypeString),
		component.WithProp("first", component.FieldTypeComponent, func(inst *component.Instance) (any, error) {
			value, _ := inst.Field("some_var")
			return inner.Instantiate(map[string]any{"some_var": value})
		}),
	)

	inst, err := outer.Instantiate(map[string]any{"some_var": "hi"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	got, err := newRenderer(t).Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>hi</p>" {
		t.Fatalf("expected fully resolved nesting, got %q", got)
	}
	if strings.Contains(got, "{{") {
		t.Fatalf("residual template syntax in %q", got)
	}
}

func TestRender_NestedComponentList(t *testing.T) {
	item := component.MustDefinition("item",
		component.WithTemplate("<li>{{ label }}</li>"),
		component.WithField("label", component.FieldTypeString),
	)
	list := component.MustDefinition("list",
		component.WithTemplate("<ul>{% for entry in entries %}{{ entry }}{% endfor %}</ul>"),
		component.WithField("entries", component.FieldTypeArray),
	)

	first, err := item.Instantiate(map[string]any{"label": "one"})
	if err != nil {
		t.Fatalf("instantiate first: %v", err)
	}
	second, err := item.Instantiate(map[string]any{"label": "two"})
	if err != nil {
		t.Fatalf("instantiate second: %v", err)
	}

	inst, err := list.Instantiate(map[string]any{
		"entries": []*component.Instance{first, second},
	})
	if err != nil {
		t.Fatalf("instantiate list: %v", err)
	}

	got, err := newRenderer(t).Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<ul><li>one</li><li>two</li></ul>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRender_IdempotentAndLazyComputedOnce(t *testing.T) {
	calls := 0
	def := component.MustDefinition("invoice",
		component.WithTemplate("<p>Total: ${{ total|floatformat:2 }}</p>"),
		component.WithField("gross_amount", component.FieldTypeNumber),
		component.WithProp("total", component.FieldTypeNumber, func(inst *component.Instance) (any, error) {
			calls++
			gross, _ := inst.Field("gross_amount")
			return gross.(float64) * 1.1, nil
		}),
	)

	inst, err := def.Instantiate(map[string]any{"gross_amount": 1000.0})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	renderer := newRenderer(t)
	first, err := renderer.Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := renderer.Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}

	if first != second {
		t.Fatalf("renders differ: %q vs %q", first, second)
	}
	if !strings.Contains(first, "$1100.00") {
		t.Fatalf("expected two-decimal total, got %q", first)
	}
	if calls != 1 {
		t.Fatalf("expected lazy prop to compute once, got %d", calls)
	}
}

func TestRender_PropValidationErrorSurfaces(t *testing.T) {
	def := component.MustDefinition("broken",
		component.WithTemplate("<p>{{ total }}</p>"),
		component.WithProp("total", component.FieldTypeNumber, func(*component.Instance) (any, error) {
			return "not a number", nil
		}),
	)
	inst, err := def.Instantiate(nil)
	if err != nil {
		t.Fatalf("instantiation must not evaluate props: %v", err)
	}

	_, err = newRenderer(t).Render(context.Background(), inst)
	var valErr *component.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError from lazy prop, got %v", err)
	}
}

func TestRender_MaxDepth(t *testing.T) {
	var def *component.Definition
	def = component.MustDefinition("recursive",
		component.WithTemplate("<div>{{ child }}</div>"),
		component.WithProp("child", component.FieldTypeComponent, func(*component.Instance) (any, error) {
			return def.Instantiate(nil)
		}),
	)

	inst, err := def.Instantiate(nil)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	_, err = newRenderer(t, WithMaxDepth(4)).Render(context.Background(), inst)
	var tplErr *component.TemplateError
	if !errors.As(err, &tplErr) {
		t.Fatalf("expected TemplateError for unbounded nesting, got %v", err)
	}
	if !strings.Contains(tplErr.Reason, "depth") {
		t.Fatalf("expected depth exhaustion, got %q", tplErr.Reason)
	}
}

func TestRender_Sanitizer(t *testing.T) {
	def := component.MustDefinition("unsafe",
		component.WithTemplate("<p>{{ body }}</p>"),
		component.WithField("body", component.FieldTypeString),
	)
	inst, err := def.Instantiate(map[string]any{
		"body": `hello <script>alert("x")</script>`,
	})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	got, err := newRenderer(t, WithSanitizer(sanitize.UGC())).Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("script survived sanitization: %q", got)
	}
	if !strings.Contains(got, "hello") {
		t.Fatalf("text content lost: %q", got)
	}
}

func TestRender_ThemeGlobals(t *testing.T) {
	def := component.MustDefinition("themed",
		component.WithTemplate("<style>{{ theme.cssVarsStyle }}</style><p>{{ msg }}</p>"),
		component.WithField("msg", component.FieldTypeString),
		component.WithExternals("theme"),
	)
	inst, err := def.Instantiate(map[string]any{"msg": "hi"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	renderer := newRenderer(t, WithTheme(&theme.RendererConfig{
		Theme:   "mono",
		CSSVars: map[string]string{"--fg": "#111"},
	}))

	got, err := renderer.Render(context.Background(), inst)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "--fg: #111;") {
		t.Fatalf("expected css var in output, got %q", got)
	}
}

func TestRender_NilInstance(t *testing.T) {
	_, err := newRenderer(t).Render(context.Background(), nil)
	if !errors.Is(err, ErrNilInstance) {
		t.Fatalf("expected ErrNilInstance, got %v", err)
	}
}

func TestSave_WritesFile(t *testing.T) {
	def := component.MustDefinition("doc",
		component.WithTemplate("<p>{{ msg }}</p>"),
		component.WithField("msg", component.FieldTypeString),
	)
	inst, err := def.Instantiate(map[string]any{"msg": "saved"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.html")
	if err := newRenderer(t).Save(context.Background(), inst, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<p>saved</p>" {
		t.Fatalf("unexpected file contents %q", data)
	}
}

func TestSave_OverwritesExisting(t *testing.T) {
	def := component.MustDefinition("doc",
		component.WithTemplate("<p>{{ msg }}</p>"),
		component.WithField("msg", component.FieldTypeString),
	)
	inst, err := def.Instantiate(map[string]any{"msg": "fresh"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.html")
	if err := os.WriteFile(path, []byte("stale contents"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	if err := newRenderer(t).Save(context.Background(), inst, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "<p>fresh</p>" {
		t.Fatalf("expected overwrite, got %q", data)
	}
}

func TestSave_FilesystemError(t *testing.T) {
	def := component.MustDefinition("doc",
		component.WithTemplate("<p>{{ msg }}</p>"),
		component.WithField("msg", component.FieldTypeString),
	)
	inst, err := def.Instantiate(map[string]any{"msg": "hi"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	path := filepath.Join(t.TempDir(), "missing", "out.html")
	err = newRenderer(t).Save(context.Background(), inst, path)

	var fsErr *FilesystemError
	if !errors.As(err, &fsErr) {
		t.Fatalf("expected FilesystemError, got %v", err)
	}
	if fsErr.Path != path {
		t.Fatalf("expected failing path on error, got %q", fsErr.Path)
	}
}
