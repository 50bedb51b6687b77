package schema_test

import (
	"testing"

	"github.com/adas26/txfb/pkg/schema"
)

func TestFromYAML(t *testing.T) {
	doc := []byte(`
formTitle: Site Visit
description: Inspection checklist
fields:
  - label: Inspector
    internalName: Inspector
    type: person
    required: true
    order: 1
  - label: Passed
    internalName: Passed
    type: yesno
    order: 2
`)

	form, err := schema.FromYAML(doc)
	if err != nil {
		t.Fatalf("from yaml: %v", err)
	}
	if form.FormTitle != "Site Visit" {
		t.Fatalf("title = %q", form.FormTitle)
	}
	if len(form.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(form.Fields))
	}
	if form.Fields[0].Type != schema.FieldTypePerson || !form.Fields[0].Required {
		t.Fatalf("first field decoded wrong: %+v", form.Fields[0])
	}
}

func TestFromYAMLBlank(t *testing.T) {
	form, err := schema.FromYAML(nil)
	if err != nil {
		t.Fatalf("blank yaml: %v", err)
	}
	if len(form.Fields) != 0 {
		t.Fatalf("expected zero schema, got %+v", form)
	}
}
