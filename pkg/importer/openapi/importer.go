// Package openapi seeds form schemas from OpenAPI documents. The request body
// of an operation becomes a field list, so an existing API contract can
// bootstrap a form instead of authoring every field by hand.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/adas26/txfb/pkg/schema"
)

// Importer converts OpenAPI operations into form schemas.
type Importer struct{}

// New constructs an Importer.
func New() *Importer {
	return &Importer{}
}

// ImportOperation loads an OpenAPI document and converts the named operation's
// request body into a form schema. The operation is matched by operationId,
// falling back to "method:path" for operations without one.
func (i *Importer) ImportOperation(ctx context.Context, data []byte, operationID string) (schema.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return schema.FormSchema{}, err
	}
	if len(data) == 0 {
		return schema.FormSchema{}, errors.New("openapi import: document payload is empty")
	}
	if strings.TrimSpace(operationID) == "" {
		return schema.FormSchema{}, errors.New("openapi import: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return schema.FormSchema{}, fmt.Errorf("openapi import: load document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return schema.FormSchema{}, fmt.Errorf("openapi import: operation %q not found", operationID)
	}

	body := requestBodySchema(operation)
	if body == nil || len(body.Properties) == 0 {
		return schema.FormSchema{}, fmt.Errorf("openapi import: operation %q has no request body properties", operationID)
	}

	title := strings.TrimSpace(operation.Summary)
	if title == "" {
		title = operationID
	}

	form := schema.FormSchema{
		FormTitle:   title,
		Description: operation.Description,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for idx, name := range names {
		property := body.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		field := fieldFor(name, property.Value)
		field.Required = required[name]
		field.Order = idx + 1
		form.Fields = append(form.Fields, field)
	}

	if len(form.Fields) == 0 {
		return schema.FormSchema{}, fmt.Errorf("openapi import: operation %q produced no fields", operationID)
	}
	return form, nil
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			if operation.OperationID == operationID {
				return operation
			}
			if operation.OperationID == "" && strings.ToLower(method)+":"+path == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

// fieldFor maps one body property to a form field kind.
func fieldFor(name string, property *openapi3.Schema) schema.FieldDefinition {
	label := strings.TrimSpace(property.Title)
	if label == "" {
		label = name
	}

	field := schema.FieldDefinition{
		Label:        label,
		InternalName: schema.DeriveInternalName(name),
		Type:         schema.FieldTypeText,
	}

	switch {
	case typeIs(property, openapi3.TypeBoolean):
		field.Type = schema.FieldTypeYesNo
	case typeIs(property, openapi3.TypeInteger), typeIs(property, openapi3.TypeNumber):
		field.Type = schema.FieldTypeNumber
	case typeIs(property, openapi3.TypeArray):
		if options := enumStrings(itemEnum(property)); len(options) > 0 {
			field.Type = schema.FieldTypeCheckbox
			field.Options = options
		} else {
			field.Type = schema.FieldTypeMultiline
		}
	default:
		// string and untyped properties
		if options := enumStrings(property.Enum); len(options) > 0 {
			field.Type = schema.FieldTypeDropdown
			field.Options = options
			break
		}
		switch property.Format {
		case "date", "date-time":
			field.Type = schema.FieldTypeDate
		case "email":
			field.Type = schema.FieldTypePerson
		case "textarea":
			field.Type = schema.FieldTypeMultiline
		}
	}

	return field
}

func typeIs(property *openapi3.Schema, kind string) bool {
	return property.Type != nil && property.Type.Is(kind)
}

func itemEnum(property *openapi3.Schema) []any {
	if property.Items == nil || property.Items.Value == nil {
		return nil
	}
	return property.Items.Value.Enum
}

func enumStrings(values []any) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, fmt.Sprint(value))
	}
	return out
}
