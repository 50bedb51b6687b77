package builder

import (
	"fmt"
	"strings"

	"github.com/adas26/txfb/pkg/schema"
)

// FieldInput is the draft of a single field handed to AddField. Order is a
// pointer so callers can distinguish "place explicitly" from "append after the
// current maximum".
type FieldInput struct {
	Label        string
	InternalName string
	Type         schema.FieldType
	Required     bool
	Order        *int

	// Table metadata (htmltable, htmlrender).
	TableName    string
	TableRows    int
	TableColumns int

	// Raw markup (plainhtml).
	HTMLContent string
}

// AddOption appends a choice option to the pending option list. Values that
// trim to empty are ignored.
func AddOption(d Draft, value string) Draft {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return d
	}
	d.PendingOptions = append(copyStrings(d.PendingOptions), trimmed)
	return d
}

// AddColumn appends a table column definition to the pending header set. Blank
// names are ignored; a blank type defaults to text; options attach only when
// at least one was provided.
func AddColumn(d Draft, name string, typ schema.FieldType, options []string) Draft {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return d
	}
	if typ == "" {
		typ = schema.FieldTypeText
	}
	def := schema.ColumnDef{Name: trimmed, Type: typ}
	if len(options) > 0 {
		def.Options = copyStrings(options)
	}
	d.PendingColumns = append(copyColumns(d.PendingColumns), def)
	d.PendingHeaders = append(copyStrings(d.PendingHeaders), trimmed)
	return d
}

// RemoveColumn deletes the pending column at index from both the header list
// and the column definitions. An out-of-range index is a no-op.
func RemoveColumn(d Draft, index int) Draft {
	if index < 0 || index >= len(d.PendingColumns) {
		return d
	}
	columns := copyColumns(d.PendingColumns)
	d.PendingColumns = append(columns[:index], columns[index+1:]...)
	if index < len(d.PendingHeaders) {
		headers := copyStrings(d.PendingHeaders)
		d.PendingHeaders = append(headers[:index], headers[index+1:]...)
	}
	return d
}

// SetCell writes a cell value into the pending grid, growing it lazily: rows
// are appended up to row+1 (each sized to the pending column count or col+1,
// whichever is greater) and the target row is padded out to col+1. Cell edits
// can arrive in any order and the grid never indexes out of bounds; memory
// stays proportional to the cells actually edited.
func SetCell(d Draft, row, col int, value string) Draft {
	if row < 0 || col < 0 {
		return d
	}

	width := len(d.PendingColumns)
	if col+1 > width {
		width = col + 1
	}

	grid := make([][]string, len(d.PendingCells))
	for i, cells := range d.PendingCells {
		grid[i] = copyStrings(cells)
	}
	for len(grid) <= row {
		grid = append(grid, make([]string, width))
	}
	for len(grid[row]) <= col {
		grid[row] = append(grid[row], "")
	}
	grid[row][col] = value

	d.PendingCells = grid
	return d
}

// AddField validates the field input against the accumulated pending state,
// appends the resulting definition to the draft, and clears all transient
// input. On validation failure the draft is returned unchanged alongside a
// *ValidationError describing the gap.
func AddField(d Draft, in FieldInput) (Draft, error) {
	label := strings.TrimSpace(in.Label)
	if label == "" {
		return d, &ValidationError{Field: "label", Message: "Please provide a field label."}
	}
	if !in.Type.Known() {
		return d, &ValidationError{Field: "type", Message: fmt.Sprintf("Unknown field type %q.", in.Type)}
	}

	if in.Type.IsChoice() && len(d.PendingOptions) == 0 {
		return d, &ValidationError{Field: "options", Message: "Please add at least one option."}
	}

	if in.Type == schema.FieldTypeHTMLTable {
		if strings.TrimSpace(in.TableName) == "" {
			return d, &ValidationError{Field: "tableName", Message: "Please provide a table name."}
		}
		if in.TableRows < 1 {
			return d, &ValidationError{Field: "tableRows", Message: "Please provide at least 1 table row."}
		}
		if in.TableColumns < 1 {
			return d, &ValidationError{Field: "tableColumns", Message: "Please provide at least 1 table column."}
		}
		if len(d.PendingColumns) != in.TableColumns {
			return d, &ValidationError{
				Field:   "tableColumnDefs",
				Message: fmt.Sprintf("Please provide exactly %d column header(s).", in.TableColumns),
			}
		}
	}

	internalName := strings.TrimSpace(in.InternalName)
	if internalName == "" {
		internalName = schema.DeriveInternalName(label)
	}
	for _, existing := range d.Fields {
		if existing.InternalName == internalName {
			return d, &ValidationError{
				Field:   "internalName",
				Message: fmt.Sprintf("Internal name %q is already in use.", internalName),
			}
		}
	}

	order := d.nextOrder()
	if in.Order != nil {
		order = *in.Order
	}

	field := schema.FieldDefinition{
		Label:        label,
		InternalName: internalName,
		Type:         in.Type,
		Required:     in.Required,
		Order:        order,
	}

	switch {
	case in.Type.IsChoice():
		field.Options = copyStrings(d.PendingOptions)
	case in.Type.IsTable():
		field.TableName = strings.TrimSpace(in.TableName)
		field.TableRows = in.TableRows
		field.TableColumns = in.TableColumns
		field.TableHeaders = copyStrings(d.PendingHeaders)
		field.TableColumnDefs = copyColumns(d.PendingColumns)
		field.TableData = copyGrid(d.PendingCells)
	case in.Type == schema.FieldTypePlainHTML:
		field.HTMLContent = in.HTMLContent
	}

	d.Fields = append(copyFields(d.Fields), field)
	return d.clearPending(), nil
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func copyColumns(in []schema.ColumnDef) []schema.ColumnDef {
	if len(in) == 0 {
		return nil
	}
	out := make([]schema.ColumnDef, len(in))
	copy(out, in)
	return out
}

func copyGrid(in [][]string) [][]string {
	if len(in) == 0 {
		return nil
	}
	out := make([][]string, len(in))
	for i, row := range in {
		out[i] = copyStrings(row)
		if out[i] == nil {
			out[i] = []string{}
		}
	}
	return out
}

func copyFields(in []schema.FieldDefinition) []schema.FieldDefinition {
	if len(in) == 0 {
		return nil
	}
	out := make([]schema.FieldDefinition, len(in))
	copy(out, in)
	return out
}
