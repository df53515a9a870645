// Package openapi derives component field schemas from OpenAPI 3 documents
// using kin-openapi, so components can mirror the models an API already
// declares instead of restating them.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-phractal/pkg/component"
)

// FieldsFromDocument loads an OpenAPI document from raw JSON or YAML and
// converts the named component schema into declared fields.
func FieldsFromDocument(ctx context.Context, raw []byte, schemaName string) ([]component.Field, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return nil, errors.New("openapi: document declares no component schemas")
	}
	ref, ok := spec.Components.Schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("openapi: schema %q not found", schemaName)
	}
	return FieldsFromSchema(ref)
}

// FieldsFromSchema converts an object schema's properties into declared
// fields: property types map onto field types, the schema's required list
// drives the Required flag, and declared defaults carry over. Properties are
// returned in name order so generated definitions stay stable.
func FieldsFromSchema(ref *openapi3.SchemaRef) ([]component.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, errors.New("openapi: schema is required")
	}
	src := ref.Value

	if t := firstSchemaType(src.Type); t != "" && t != "object" {
		return nil, fmt.Errorf("openapi: schema type %q is not an object", t)
	}
	if len(src.Properties) == 0 {
		return nil, errors.New("openapi: object schema declares no properties")
	}

	required := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]component.Field, 0, len(names))
	for _, name := range names {
		property := src.Properties[name]
		fieldType, err := fieldTypeFor(property)
		if err != nil {
			return nil, fmt.Errorf("openapi: property %q: %w", name, err)
		}

		field := component.Field{
			Name: name,
			Type: fieldType,
		}
		if property.Value != nil && property.Value.Default != nil {
			field.Default = property.Value.Default
		}
		if _, ok := required[name]; ok && field.Default == nil {
			field.Required = true
		}
		fields = append(fields, field)
	}
	return fields, nil
}

func fieldTypeFor(ref *openapi3.SchemaRef) (component.FieldType, error) {
	if ref == nil || ref.Value == nil {
		return "", errors.New("schema value is missing")
	}
	switch t := firstSchemaType(ref.Value.Type); t {
	case "string":
		return component.FieldTypeString, nil
	case "integer":
		return component.FieldTypeInteger, nil
	case "number":
		return component.FieldTypeNumber, nil
	case "boolean":
		return component.FieldTypeBoolean, nil
	case "array":
		return component.FieldTypeArray, nil
	case "object", "":
		return component.FieldTypeObject, nil
	default:
		return "", fmt.Errorf("unsupported schema type %q", t)
	}
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
