package component

import (
	"errors"
	"testing"
)

func greetingDefinition(t *testing.T) *Definition {
	t.Helper()
	def, err := NewDefinition("greeting",
		WithTemplate("<p>{{ name }}</p>"),
		WithField("name", FieldTypeString),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}
	return def
}

func TestInstantiate_ValidValues(t *testing.T) {
	def := greetingDefinition(t)

	inst, err := def.Instantiate(map[string]any{"name": "Murderbot"})
	if err != nil {
		t.Fatalf("expected instantiation to succeed, got %v", err)
	}

	value, ok := inst.Field("name")
	if !ok || value != "Murderbot" {
		t.Fatalf("expected bound field value, got %v (ok=%v)", value, ok)
	}
}

func TestInstantiate_WrongType(t *testing.T) {
	def, err := NewDefinition("typed",
		WithTemplate("<p>{{ count }}</p>"),
		WithField("count", FieldTypeInteger),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	inst, err := def.Instantiate(map[string]any{"count": "three"})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if inst != nil {
		t.Fatalf("expected no instance on validation failure")
	}
	if valErr.Name != "count" {
		t.Fatalf("expected failing field count, got %q", valErr.Name)
	}
}

func TestInstantiate_MissingRequired(t *testing.T) {
	def := greetingDefinition(t)

	_, err := def.Instantiate(nil)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError for missing field, got %v", err)
	}
}

func TestInstantiate_UndeclaredKey(t *testing.T) {
	def := greetingDefinition(t)

	_, err := def.Instantiate(map[string]any{
		"name":  "Murderbot",
		"extra": true,
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError for undeclared key, got %v", err)
	}
	if valErr.Name != "extra" {
		t.Fatalf("expected failing key extra, got %q", valErr.Name)
	}
}

func TestInstantiate_DefaultApplies(t *testing.T) {
	def, err := NewDefinition("defaulted",
		WithTemplate("<p>{{ name }}</p>"),
		WithOptionalField("name", FieldTypeString, "anonymous"),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	inst, err := def.Instantiate(nil)
	if err != nil {
		t.Fatalf("expected default to satisfy field, got %v", err)
	}
	value, _ := inst.Field("name")
	if value != "anonymous" {
		t.Fatalf("expected default value, got %v", value)
	}
}

func TestInstantiate_IntegerAcceptsIntegralFloat(t *testing.T) {
	def, err := NewDefinition("count",
		WithTemplate("<p>{{ n }}</p>"),
		WithField("n", FieldTypeInteger),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	// JSON decoding produces float64 for every number.
	if _, err := def.Instantiate(map[string]any{"n": float64(3)}); err != nil {
		t.Fatalf("expected integral float to pass, got %v", err)
	}
	if _, err := def.Instantiate(map[string]any{"n": 3.5}); err == nil {
		t.Fatalf("expected fractional float to fail integer check")
	}
}

func TestLookup_FieldsWinOverProps(t *testing.T) {
	// Fields and props cannot share a name, so precedence is only observable
	// through resolution order: a declared field must resolve without
	// touching the prop table.
	def, err := NewDefinition("mixed",
		WithTemplate("<p>{{ name }} {{ shout }}</p>"),
		WithField("name", FieldTypeString),
		WithProp("shout", FieldTypeString, func(inst *Instance) (any, error) {
			value, _ := inst.Field("name")
			return value.(string) + "!", nil
		}),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	inst, err := def.Instantiate(map[string]any{"name": "hi"})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	value, ok, err := inst.Lookup("name")
	if err != nil || !ok || value != "hi" {
		t.Fatalf("expected field lookup, got %v ok=%v err=%v", value, ok, err)
	}
	value, ok, err = inst.Lookup("shout")
	if err != nil || !ok || value != "hi!" {
		t.Fatalf("expected prop lookup, got %v ok=%v err=%v", value, ok, err)
	}
	if _, ok, _ := inst.Lookup("missing"); ok {
		t.Fatalf("expected unresolved lookup for undeclared name")
	}
}

func TestProp_ValidationFailsAtFirstAccess(t *testing.T) {
	def, err := NewDefinition("lazy",
		WithTemplate("<p>{{ total }}</p>"),
		WithProp("total", FieldTypeNumber, func(*Instance) (any, error) {
			return "not a number", nil
		}),
	)
	if err != nil {
		t.Fatalf("definition must build even though the prop will fail: %v", err)
	}

	inst, err := def.Instantiate(nil)
	if err != nil {
		t.Fatalf("instantiation must not evaluate props: %v", err)
	}

	_, err = inst.Prop("total")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError at first access, got %v", err)
	}
}

func TestProp_ComputedOnce(t *testing.T) {
	calls := 0
	def, err := NewDefinition("cached",
		WithTemplate("<p>{{ value }}</p>"),
		WithProp("value", FieldTypeInteger, func(*Instance) (any, error) {
			calls++
			return calls, nil
		}),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	inst, err := def.Instantiate(nil)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	for i := 0; i < 3; i++ {
		value, err := inst.Prop("value")
		if err != nil {
			t.Fatalf("prop read %d: %v", i, err)
		}
		if value != 1 {
			t.Fatalf("expected cached value 1, got %v", value)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one computation, got %d", calls)
	}
}

func TestPlainProp_RecomputedEveryAccess(t *testing.T) {
	calls := 0
	def, err := NewDefinition("plain",
		WithTemplate("<p>{{ tick }}</p>"),
		WithPlainProp("tick", func(*Instance) (any, error) {
			calls++
			return calls, nil
		}),
	)
	if err != nil {
		t.Fatalf("build definition: %v", err)
	}

	inst, err := def.Instantiate(nil)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	first, _ := inst.Prop("tick")
	second, _ := inst.Prop("tick")
	if first == second {
		t.Fatalf("expected plain prop to recompute, got %v twice", first)
	}
	if calls != 2 {
		t.Fatalf("expected two computations, got %d", calls)
	}
}
