package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-phractal/pkg/component"
)

// Collector prompts for each declared field of a definition and returns the
// parsed values, ready for Definition.Instantiate.
type Collector struct {
	driver PromptDriver
}

// NewCollector builds a Collector. A nil driver selects the survey-backed
// terminal driver.
func NewCollector(driver PromptDriver) *Collector {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Collector{driver: driver}
}

// Collect walks the declared fields in declaration order, prompting for
// each. Optional fields left blank are omitted so declared defaults apply.
func (c *Collector) Collect(ctx context.Context, def *component.Definition) (map[string]any, error) {
	if def == nil {
		return nil, fmt.Errorf("tui: definition is required")
	}

	values := make(map[string]any)
	for _, field := range def.Fields() {
		if field.Type == component.FieldTypeComponent {
			// Nested components cannot be typed into a prompt.
			if err := c.driver.Info(ctx, fmt.Sprintf("skipping component field %q", field.Name)); err != nil {
				return nil, err
			}
			continue
		}

		value, set, err := c.collectField(ctx, field)
		if err != nil {
			return nil, err
		}
		if set {
			values[field.Name] = value
		}
	}
	return values, nil
}

func (c *Collector) collectField(ctx context.Context, field component.Field) (any, bool, error) {
	if field.Type == component.FieldTypeBoolean {
		fallback, _ := field.Default.(bool)
		out, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Name,
			Default: fallback,
		})
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}

	cfg := InputConfig{
		Message:   fmt.Sprintf("%s (%s)", field.Name, field.Type),
		Validator: fieldValidator(field),
	}
	if field.Default != nil {
		cfg.Default = fmt.Sprint(field.Default)
	}

	raw, err := c.driver.Input(ctx, cfg)
	if err != nil {
		return nil, false, err
	}
	if strings.TrimSpace(raw) == "" && !field.Required {
		return nil, false, nil
	}
	value, err := parseField(field, raw)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// fieldValidator gives the prompt immediate feedback so conformance errors
// show up while typing rather than at instantiation.
func fieldValidator(field component.Field) func(string) error {
	return func(raw string) error {
		if strings.TrimSpace(raw) == "" {
			if field.Required {
				return fmt.Errorf("%s is required", field.Name)
			}
			return nil
		}
		_, err := parseField(field, raw)
		return err
	}
}

func parseField(field component.Field, raw string) (any, error) {
	trimmed := strings.TrimSpace(raw)
	switch field.Type {
	case component.FieldTypeString:
		return raw, nil
	case component.FieldTypeInteger:
		value, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not an integer", field.Name)
		}
		return value, nil
	case component.FieldTypeNumber:
		value, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: not a number", field.Name)
		}
		return value, nil
	case component.FieldTypeArray, component.FieldTypeObject:
		var value any
		if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
			return nil, fmt.Errorf("%s: not valid JSON", field.Name)
		}
		if err := component.CheckValue(field.Type, value); err != nil {
			return nil, fmt.Errorf("%s: %v", field.Name, err)
		}
		return value, nil
	default:
		return nil, fmt.Errorf("%s: cannot prompt for type %s", field.Name, field.Type)
	}
}
