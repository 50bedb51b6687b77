package builder_test

import (
	"strings"
	"testing"

	"github.com/adas26/txfb/pkg/builder"
	"github.com/adas26/txfb/pkg/schema"
	"github.com/adas26/txfb/pkg/testsupport"
)

func intPtr(v int) *int { return &v }

func TestAddFieldRejectsEmptyLabel(t *testing.T) {
	_, err := builder.AddField(builder.Draft{}, builder.FieldInput{
		Label: "   ",
		Type:  schema.FieldTypeText,
	})
	if !builder.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddFieldDerivesInternalName(t *testing.T) {
	d, err := builder.AddField(builder.Draft{}, builder.FieldInput{
		Label: "Employee Name!",
		Type:  schema.FieldTypeText,
	})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if got := d.Fields[0].InternalName; got != "EmployeeName" {
		t.Fatalf("internal name = %q, want EmployeeName", got)
	}
}

func TestAddFieldHonoursExplicitInternalName(t *testing.T) {
	d, err := builder.AddField(builder.Draft{}, builder.FieldInput{
		Label:        "Employee Name",
		InternalName: "emp_name",
		Type:         schema.FieldTypeText,
	})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if got := d.Fields[0].InternalName; got != "emp_name" {
		t.Fatalf("internal name = %q, want emp_name", got)
	}
}

func TestAddFieldRejectsDuplicateInternalName(t *testing.T) {
	d, err := builder.AddField(builder.Draft{}, builder.FieldInput{Label: "Name", Type: schema.FieldTypeText})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	_, err = builder.AddField(d, builder.FieldInput{Label: "Name", Type: schema.FieldTypeMultiline})
	if !builder.IsValidation(err) {
		t.Fatalf("expected duplicate internal name rejection, got %v", err)
	}
}

func TestAddFieldAutoOrder(t *testing.T) {
	d := builder.Draft{
		Fields: []schema.FieldDefinition{
			{Label: "A", InternalName: "A", Type: schema.FieldTypeText, Order: 1},
			{Label: "B", InternalName: "B", Type: schema.FieldTypeText, Order: 3},
		},
	}

	d, err := builder.AddField(d, builder.FieldInput{Label: "C", Type: schema.FieldTypeText})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if got := d.Fields[2].Order; got != 4 {
		t.Fatalf("auto order = %d, want 4", got)
	}

	d, err = builder.AddField(d, builder.FieldInput{Label: "D", Type: schema.FieldTypeText, Order: intPtr(2)})
	if err != nil {
		t.Fatalf("add field with explicit order: %v", err)
	}
	if got := d.Fields[3].Order; got != 2 {
		t.Fatalf("explicit order = %d, want 2", got)
	}
}

func TestAddFieldFirstOrderIsOne(t *testing.T) {
	d, err := builder.AddField(builder.Draft{}, builder.FieldInput{Label: "Only", Type: schema.FieldTypeText})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if got := d.Fields[0].Order; got != 1 {
		t.Fatalf("first order = %d, want 1", got)
	}
}

func TestAddFieldDropdownRequiresOptions(t *testing.T) {
	_, err := builder.AddField(builder.Draft{}, builder.FieldInput{
		Label: "Approved",
		Type:  schema.FieldTypeDropdown,
	})
	if !builder.IsValidation(err) {
		t.Fatalf("expected rejection with no options, got %v", err)
	}

	d := builder.AddOption(builder.Draft{}, "Yes")
	d, err = builder.AddField(d, builder.FieldInput{Label: "Approved", Type: schema.FieldTypeDropdown})
	if err != nil {
		t.Fatalf("add field with one option: %v", err)
	}
	if diff := testsupport.CompareGolden([]string{"Yes"}, d.Fields[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if len(d.PendingOptions) != 0 {
		t.Fatalf("pending options should clear after AddField, got %v", d.PendingOptions)
	}
}

func TestAddOptionTrimsAndSkipsBlank(t *testing.T) {
	d := builder.AddOption(builder.Draft{}, "  Maybe  ")
	d = builder.AddOption(d, "   ")
	d = builder.AddOption(d, "")

	if diff := testsupport.CompareGolden([]string{"Maybe"}, d.PendingOptions); diff != "" {
		t.Fatalf("pending options mismatch (-want +got):\n%s", diff)
	}
}

func TestAddFieldTableHeaderCountMessage(t *testing.T) {
	d := builder.AddColumn(builder.Draft{}, "Item", schema.FieldTypeText, nil)

	_, err := builder.AddField(d, builder.FieldInput{
		Label:        "Purchases",
		Type:         schema.FieldTypeHTMLTable,
		TableName:    "Purchases",
		TableRows:    3,
		TableColumns: 2,
	})
	if err == nil {
		t.Fatal("expected header count rejection")
	}
	if !strings.Contains(err.Error(), "Please provide exactly 2 column header(s).") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestAddFieldTableValidationGates(t *testing.T) {
	base := builder.AddColumn(builder.Draft{}, "Item", schema.FieldTypeText, nil)

	cases := []builder.FieldInput{
		{Label: "T", Type: schema.FieldTypeHTMLTable, TableRows: 1, TableColumns: 1},                    // missing name
		{Label: "T", Type: schema.FieldTypeHTMLTable, TableName: "T", TableRows: 0, TableColumns: 1},    // rows < 1
		{Label: "T", Type: schema.FieldTypeHTMLTable, TableName: "T", TableRows: 1, TableColumns: 0},    // cols < 1
	}
	for i, in := range cases {
		if _, err := builder.AddField(base, in); !builder.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestAddFieldTableSnapshotsPendingState(t *testing.T) {
	d := builder.AddColumn(builder.Draft{}, "Item", schema.FieldTypeText, nil)
	d = builder.AddColumn(d, "Billable", schema.FieldTypeYesNo, nil)
	d = builder.SetCell(d, 0, 0, "Travel")
	d = builder.SetCell(d, 1, 1, "true")

	d, err := builder.AddField(d, builder.FieldInput{
		Label:        "Expenses",
		Type:         schema.FieldTypeHTMLTable,
		TableName:    "Expenses",
		TableRows:    2,
		TableColumns: 2,
	})
	if err != nil {
		t.Fatalf("add table field: %v", err)
	}

	field := d.Fields[0]
	wantDefs := []schema.ColumnDef{
		{Name: "Item", Type: schema.FieldTypeText},
		{Name: "Billable", Type: schema.FieldTypeYesNo},
	}
	if diff := testsupport.CompareGolden(wantDefs, field.TableColumnDefs); diff != "" {
		t.Fatalf("column defs mismatch (-want +got):\n%s", diff)
	}
	if diff := testsupport.CompareGolden([]string{"Item", "Billable"}, field.TableHeaders); diff != "" {
		t.Fatalf("headers mismatch (-want +got):\n%s", diff)
	}
	if field.CellValue(0, 0) != "Travel" || field.CellValue(1, 1) != "true" {
		t.Fatalf("cell snapshot wrong: %+v", field.TableData)
	}

	if len(d.PendingColumns) != 0 || len(d.PendingHeaders) != 0 || len(d.PendingCells) != 0 {
		t.Fatal("pending table state should clear after AddField")
	}
}

func TestAddColumnDefaultsAndBlankName(t *testing.T) {
	d := builder.AddColumn(builder.Draft{}, "  ", schema.FieldTypeText, nil)
	if len(d.PendingColumns) != 0 {
		t.Fatal("blank column name should be a no-op")
	}

	d = builder.AddColumn(d, "Status", "", []string{"Open", "Closed"})
	if d.PendingColumns[0].Type != schema.FieldTypeText {
		t.Fatalf("blank type should default to text, got %q", d.PendingColumns[0].Type)
	}
	if diff := testsupport.CompareGolden([]string{"Open", "Closed"}, d.PendingColumns[0].Options); diff != "" {
		t.Fatalf("column options mismatch (-want +got):\n%s", diff)
	}

	d = builder.AddColumn(d, "Notes", schema.FieldTypeText, nil)
	if d.PendingColumns[1].Options != nil {
		t.Fatal("empty option list should not attach to the column")
	}
}

func TestRemoveColumn(t *testing.T) {
	d := builder.AddColumn(builder.Draft{}, "A", schema.FieldTypeText, nil)
	d = builder.AddColumn(d, "B", schema.FieldTypeNumber, nil)
	d = builder.AddColumn(d, "C", schema.FieldTypeDate, nil)

	d = builder.RemoveColumn(d, 1)
	if diff := testsupport.CompareGolden([]string{"A", "C"}, d.PendingHeaders); diff != "" {
		t.Fatalf("headers after remove mismatch (-want +got):\n%s", diff)
	}
	if len(d.PendingColumns) != 2 || d.PendingColumns[1].Name != "C" {
		t.Fatalf("columns after remove: %+v", d.PendingColumns)
	}

	// Out-of-range indexes are defensive no-ops.
	d = builder.RemoveColumn(d, 5)
	d = builder.RemoveColumn(d, -1)
	if len(d.PendingColumns) != 2 {
		t.Fatalf("out-of-range remove mutated columns: %+v", d.PendingColumns)
	}
}

func TestSetCellLazyGrow(t *testing.T) {
	d := builder.AddColumn(builder.Draft{}, "A", schema.FieldTypeText, nil)
	d = builder.AddColumn(d, "B", schema.FieldTypeText, nil)
	d = builder.AddColumn(d, "C", schema.FieldTypeText, nil)

	d = builder.SetCell(d, 2, 1, "hello")

	if len(d.PendingCells) != 3 {
		t.Fatalf("expected 3 rows after writing row 2, got %d", len(d.PendingCells))
	}
	row := d.PendingCells[2]
	if len(row) < 2 {
		t.Fatalf("row length %d, want >= 2", len(row))
	}
	if row[1] != "hello" {
		t.Fatalf("cell (2,1) = %q", row[1])
	}
	for i, cell := range row {
		if i == 1 {
			continue
		}
		if cell != "" {
			t.Fatalf("untouched cell %d should be empty, got %q", i, cell)
		}
	}
	// New rows are sized to the pending column count.
	if len(d.PendingCells[0]) != 3 {
		t.Fatalf("row 0 width = %d, want 3", len(d.PendingCells[0]))
	}
}

func TestSetCellGrowsBeyondColumnCount(t *testing.T) {
	d := builder.SetCell(builder.Draft{}, 0, 4, "x")
	if len(d.PendingCells[0]) != 5 {
		t.Fatalf("row width = %d, want 5", len(d.PendingCells[0]))
	}
	if d.PendingCells[0][4] != "x" {
		t.Fatalf("cell (0,4) = %q", d.PendingCells[0][4])
	}
}

func TestSetCellOutOfOrderEdits(t *testing.T) {
	d := builder.SetCell(builder.Draft{}, 3, 0, "late")
	d = builder.SetCell(d, 0, 0, "early")
	if d.PendingCells[3][0] != "late" || d.PendingCells[0][0] != "early" {
		t.Fatalf("out-of-order edits lost: %+v", d.PendingCells)
	}
}

func TestAddFieldPlainHTML(t *testing.T) {
	d, err := builder.AddField(builder.Draft{}, builder.FieldInput{
		Label:       "Banner",
		Type:        schema.FieldTypePlainHTML,
		HTMLContent: "<h2>Welcome</h2>",
	})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	if d.Fields[0].HTMLContent != "<h2>Welcome</h2>" {
		t.Fatalf("html content = %q", d.Fields[0].HTMLContent)
	}
}

func TestAddFieldRejectsUnknownType(t *testing.T) {
	_, err := builder.AddField(builder.Draft{}, builder.FieldInput{
		Label: "Odd",
		Type:  schema.FieldType("hologram"),
	})
	if !builder.IsValidation(err) {
		t.Fatalf("expected unknown type rejection, got %v", err)
	}
}

func TestSchemaSnapshotDoesNotAliasDraft(t *testing.T) {
	d, err := builder.AddField(builder.Draft{Title: "T"}, builder.FieldInput{Label: "A", Type: schema.FieldTypeText})
	if err != nil {
		t.Fatalf("add field: %v", err)
	}
	snap := d.Schema()

	d, err = builder.AddField(d, builder.FieldInput{Label: "B", Type: schema.FieldTypeText})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(snap.Fields) != 1 {
		t.Fatalf("snapshot grew with the draft: %d fields", len(snap.Fields))
	}
}
