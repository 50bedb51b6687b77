package openapi

import (
	"context"
	"testing"

	"github.com/adas26/txfb/pkg/schema"
)

const sampleDoc = `{
  "openapi": "3.0.3",
  "info": {"title": "Expenses API", "version": "1.0.0"},
  "paths": {
    "/expenses": {
      "post": {
        "operationId": "createExpense",
        "summary": "Submit Expense",
        "description": "File a new expense report.",
        "requestBody": {
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["employee", "amount"],
                "properties": {
                  "employee": {"type": "string", "format": "email"},
                  "amount": {"type": "number"},
                  "incurred_on": {"type": "string", "format": "date"},
                  "category": {"type": "string", "enum": ["Travel", "Meals", "Supplies"]},
                  "tags": {"type": "array", "items": {"type": "string", "enum": ["urgent", "recurring"]}},
                  "reimbursable": {"type": "boolean"},
                  "notes": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {"201": {"description": "created"}}
      }
    }
  }
}`

func TestImportOperationMapsFieldKinds(t *testing.T) {
	form, err := New().ImportOperation(context.Background(), []byte(sampleDoc), "createExpense")
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if form.FormTitle != "Submit Expense" {
		t.Fatalf("title = %q", form.FormTitle)
	}
	if form.Description != "File a new expense report." {
		t.Fatalf("description = %q", form.Description)
	}
	if len(form.Fields) != 7 {
		t.Fatalf("expected 7 fields, got %d", len(form.Fields))
	}

	byName := make(map[string]schema.FieldDefinition, len(form.Fields))
	for _, field := range form.Fields {
		byName[field.InternalName] = field
	}

	cases := map[string]schema.FieldType{
		"employee":   schema.FieldTypePerson,
		"amount":     schema.FieldTypeNumber,
		"incurredon": schema.FieldTypeDate,
		"category":   schema.FieldTypeDropdown,
		"tags":       schema.FieldTypeCheckbox,
		"reimbursable": schema.FieldTypeYesNo,
		"notes":      schema.FieldTypeText,
	}
	for name, want := range cases {
		field, ok := byName[name]
		if !ok {
			t.Fatalf("missing field %q in %v", name, byName)
		}
		if field.Type != want {
			t.Fatalf("field %q type = %q, want %q", name, field.Type, want)
		}
	}

	if !byName["employee"].Required || !byName["amount"].Required {
		t.Fatal("required properties should map to required fields")
	}
	if byName["notes"].Required {
		t.Fatal("notes should not be required")
	}
	if got := byName["category"].Options; len(got) != 3 || got[0] != "Travel" {
		t.Fatalf("category options = %v", got)
	}
	if got := byName["tags"].Options; len(got) != 2 || got[0] != "urgent" {
		t.Fatalf("tags options = %v", got)
	}

	// Orders are assigned sequentially over the sorted property names.
	for i := 1; i < len(form.Fields); i++ {
		if form.Fields[i].Order != form.Fields[i-1].Order+1 {
			t.Fatalf("orders not sequential: %v", form.Fields)
		}
	}
}

func TestImportOperationUnknownID(t *testing.T) {
	_, err := New().ImportOperation(context.Background(), []byte(sampleDoc), "missing")
	if err == nil {
		t.Fatal("expected error for unknown operation")
	}
}

func TestImportOperationEmptyDocument(t *testing.T) {
	_, err := New().ImportOperation(context.Background(), nil, "createExpense")
	if err == nil {
		t.Fatal("expected error for empty document")
	}
}
