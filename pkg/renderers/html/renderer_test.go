package html_test

import (
	"context"
	"strings"
	"testing"

	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/renderers/html"
	"github.com/adas26/txfb/pkg/schema"
)

func renderForm(t *testing.T, form schema.FormSchema, options render.Options, opts ...html.Option) string {
	t.Helper()

	renderer, err := html.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	output, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(output)
}

func TestRenderEmitsControlsInOrder(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Expense Report",
		Fields: []schema.FieldDefinition{
			{Label: "Employee Name", InternalName: "EmployeeName", Type: schema.FieldTypeText, Required: true, Order: 1},
			{Label: "Department", InternalName: "Department", Type: schema.FieldTypeDropdown, Order: 2, Options: []string{"Engineering", "Finance"}},
			{Label: "Notes", InternalName: "Notes", Type: schema.FieldTypeMultiline, Order: 3},
		},
	}

	output := renderForm(t, form, render.Options{})

	if !strings.Contains(output, "<title>Expense Report</title>") {
		t.Fatal("missing page title")
	}
	for _, want := range []string{
		`name="EmployeeName"`,
		`Employee Name *`,
		`<option value="Engineering"`,
		`<option value="Finance"`,
		`<textarea id="fb-Notes" name="Notes"`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}

	if strings.Index(output, `name="EmployeeName"`) > strings.Index(output, `name="Department"`) {
		t.Fatal("fields rendered out of order")
	}
}

func TestRenderSkipsUnknownFieldType(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Survey",
		Fields: []schema.FieldDefinition{
			{Label: "Rating", InternalName: "Rating", Type: schema.FieldType("slider"), Order: 1},
			{Label: "Comments", InternalName: "Comments", Type: schema.FieldTypeText, Order: 2},
		},
	}

	output := renderForm(t, form, render.Options{})

	if strings.Contains(output, "Rating") {
		t.Fatal("unknown field should not render")
	}
	if !strings.Contains(output, `name="Comments"`) {
		t.Fatal("known field should still render")
	}
}

func TestRenderBlankTitleFallsBack(t *testing.T) {
	output := renderForm(t, schema.FormSchema{}, render.Options{})
	if !strings.Contains(output, schema.DefaultTitle) {
		t.Fatalf("expected default title in output:\n%s", output)
	}
}

func TestRenderTableEditorCellNames(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Travel",
		Fields: []schema.FieldDefinition{
			{
				Label:        "Expenses",
				InternalName: "Expenses",
				Type:         schema.FieldTypeHTMLTable,
				Order:        1,
				TableName:    "Expenses",
				TableRows:    2,
				TableColumns: 2,
				TableColumnDefs: []schema.ColumnDef{
					{Name: "Item", Type: schema.FieldTypeText},
					{Name: "Amount", Type: schema.FieldTypeCurrency},
				},
			},
		},
	}

	output := renderForm(t, form, render.Options{})

	for _, want := range []string{
		`<th>Item</th>`,
		`<th>Amount</th>`,
		`name="Expenses.0.0"`,
		`name="Expenses.1.1"`,
		`type="number"`,
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q:\n%s", want, output)
		}
	}
}

func TestRenderReadOnlyGridDefaultsYesNoToFalse(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Checklist",
		Fields: []schema.FieldDefinition{
			{
				Label:        "Items",
				InternalName: "Items",
				Type:         schema.FieldTypeHTMLRender,
				Order:        1,
				TableRows:    1,
				TableColumns: 2,
				TableColumnDefs: []schema.ColumnDef{
					{Name: "Task", Type: schema.FieldTypeText},
					{Name: "Done", Type: schema.FieldTypeYesNo},
				},
				TableData: [][]string{{"Pack bags", ""}},
			},
		},
	}

	output := renderForm(t, form, render.Options{})

	if !strings.Contains(output, "<td>Pack bags</td>") {
		t.Fatal("stored cell value missing")
	}
	if !strings.Contains(output, "<td>false</td>") {
		t.Fatalf("blank yes/no cell should display false:\n%s", output)
	}
	if strings.Contains(output, `name="Items.0.0"`) {
		t.Fatal("read-only grid should not emit editable controls")
	}
}

func TestRenderLegacyHeadersStillProduceColumns(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Legacy",
		Fields: []schema.FieldDefinition{
			{
				Label:        "Grid",
				InternalName: "Grid",
				Type:         schema.FieldTypeHTMLTable,
				Order:        1,
				TableRows:    1,
				TableColumns: 2,
				TableHeaders: []string{"One", "Two"},
			},
		},
	}

	output := renderForm(t, form, render.Options{})

	if !strings.Contains(output, "<th>One</th>") || !strings.Contains(output, "<th>Two</th>") {
		t.Fatalf("legacy headers should render as columns:\n%s", output)
	}
}

func TestRenderPlainHTMLPassesThroughByDefault(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Notice",
		Fields: []schema.FieldDefinition{
			{InternalName: "Banner", Type: schema.FieldTypePlainHTML, Order: 1,
				HTMLContent: `<div class="banner"><script>alert(1)</script>Hello</div>`},
		},
	}

	output := renderForm(t, form, render.Options{})
	if !strings.Contains(output, "<script>alert(1)</script>") {
		t.Fatal("plain markup should pass through untouched by default")
	}

	sanitized := renderForm(t, form, render.Options{}, html.WithSanitizer())
	if strings.Contains(sanitized, "<script>") {
		t.Fatal("sanitizer should strip script tags")
	}
	if !strings.Contains(sanitized, "Hello") {
		t.Fatal("sanitizer should keep text content")
	}
}

func TestRenderPrefillsAnswers(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Lunch",
		Fields: []schema.FieldDefinition{
			{Label: "Name", InternalName: "Name", Type: schema.FieldTypeText, Order: 1},
			{Label: "Toppings", InternalName: "Toppings", Type: schema.FieldTypeCheckbox, Order: 2, Options: []string{"Cheese", "Olives", "Anchovies"}},
			{Label: "Approved", InternalName: "Approved", Type: schema.FieldTypeYesNo, Order: 3},
		},
	}

	answers := render.AnswerMap{}.
		Set("Name", "Ada").
		SetSelected("Toppings", []string{"Cheese", "Olives"})

	output := renderForm(t, form, render.Options{Answers: answers})

	if !strings.Contains(output, `value="Ada"`) {
		t.Fatal("text answer not prefilled")
	}
	cheese := substringBetween(output, `value="Cheese"`, ">")
	if !strings.Contains(cheese, "checked") {
		t.Fatal("Cheese should be checked")
	}
	anchovies := substringBetween(output, `value="Anchovies"`, ">")
	if strings.Contains(anchovies, "checked") {
		t.Fatal("Anchovies should not be checked")
	}
	// Unset yes/no selects the explicit "No" default.
	if !strings.Contains(output, `<option value="false" selected>No</option>`) {
		t.Fatalf("yes/no should default to false:\n%s", output)
	}
}

func TestRenderHiddenFieldsAndReadOnly(t *testing.T) {
	form := schema.FormSchema{
		FormTitle: "Locked",
		Fields: []schema.FieldDefinition{
			{Label: "Name", InternalName: "Name", Type: schema.FieldTypeText, Order: 1},
		},
	}

	output := renderForm(t, form, render.Options{
		ReadOnly:     true,
		HiddenFields: map[string]string{"csrf": "token-123"},
	})

	if !strings.Contains(output, `<input type="hidden" name="csrf" value="token-123">`) {
		t.Fatal("hidden field missing")
	}
	if !strings.Contains(output, `name="Name" disabled`) {
		t.Fatalf("read-only control should be disabled:\n%s", output)
	}
	if strings.Contains(output, `type="submit"`) {
		t.Fatal("read-only form should not offer submit")
	}
}

func substringBetween(s, start, end string) string {
	idx := strings.Index(s, start)
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(start):]
	stop := strings.Index(rest, end)
	if stop < 0 {
		return rest
	}
	return rest[:stop]
}
