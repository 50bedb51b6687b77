package schema

import (
	"strings"
	"unicode"
)

// FieldType enumerates the form-friendly field kinds an admin can author.
type FieldType string

const (
	FieldTypeText       FieldType = "text"
	FieldTypeMultiline  FieldType = "multiline"
	FieldTypeNumber     FieldType = "number"
	FieldTypeCurrency   FieldType = "currency"
	FieldTypeDate       FieldType = "date"
	FieldTypeDropdown   FieldType = "dropdown"
	FieldTypeRadio      FieldType = "radio"
	FieldTypeCheckbox   FieldType = "checkbox"
	FieldTypeYesNo      FieldType = "yesno"
	FieldTypePerson     FieldType = "person"
	FieldTypeHTMLTable  FieldType = "htmltable"
	FieldTypeHTMLRender FieldType = "htmlrender"
	FieldTypePlainHTML  FieldType = "plainhtml"
)

// Known reports whether t is one of the recognised field kinds.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeMultiline, FieldTypeNumber, FieldTypeCurrency,
		FieldTypeDate, FieldTypeDropdown, FieldTypeRadio, FieldTypeCheckbox,
		FieldTypeYesNo, FieldTypePerson, FieldTypeHTMLTable, FieldTypeHTMLRender,
		FieldTypePlainHTML:
		return true
	default:
		return false
	}
}

// IsChoice reports whether the kind carries an option list.
func (t FieldType) IsChoice() bool {
	switch t {
	case FieldTypeDropdown, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// IsTable reports whether the kind carries the nested table payload.
func (t FieldType) IsTable() bool {
	return t == FieldTypeHTMLTable || t == FieldTypeHTMLRender
}

// ColumnDef describes one column of a table field: a display name, the control
// kind used for cells in that column, and an option list for choice columns.
type ColumnDef struct {
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Options []string  `json:"options,omitempty"`
}

// FieldDefinition models one form field. Struct tags match the persisted
// record shape, so serialising a schema is a plain JSON marshal.
type FieldDefinition struct {
	Label        string    `json:"label"`
	InternalName string    `json:"internalName"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	Order        int       `json:"order"`

	// Choice payload (dropdown, radio, checkbox).
	Options []string `json:"options,omitempty"`

	// Table payload (htmltable, htmlrender). TableHeaders predates
	// TableColumnDefs and is kept for documents written before columns
	// carried type information.
	TableName       string      `json:"tableName,omitempty"`
	TableRows       int         `json:"tableRows,omitempty"`
	TableColumns    int         `json:"tableColumns,omitempty"`
	TableHeaders    []string    `json:"tableHeaders,omitempty"`
	TableColumnDefs []ColumnDef `json:"tableColumnDefs,omitempty"`
	TableData       [][]string  `json:"tableData,omitempty"`

	// Raw markup payload (plainhtml).
	HTMLContent string `json:"htmlContent,omitempty"`
}

// FormSchema is the top-level document: form metadata plus the ordered field
// sequence.
type FormSchema struct {
	FormTitle   string            `json:"formTitle"`
	Description string            `json:"description"`
	Fields      []FieldDefinition `json:"fields"`
}

// DefaultTitle is the placeholder shown for stored items whose configuration
// is missing.
const DefaultTitle = "Untitled Form"

// DeriveInternalName produces the stable machine key for a field from its
// display label: whitespace and every non-alphanumeric rune are stripped.
func DeriveInternalName(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ColumnDefs returns the per-column definitions for a table field. Documents
// written before columns carried types only have TableHeaders; those synthesise
// text columns so older data keeps rendering.
func (f FieldDefinition) ColumnDefs() []ColumnDef {
	if len(f.TableColumnDefs) > 0 {
		return f.TableColumnDefs
	}
	if len(f.TableHeaders) == 0 {
		return nil
	}
	defs := make([]ColumnDef, len(f.TableHeaders))
	for i, header := range f.TableHeaders {
		defs[i] = ColumnDef{Name: header, Type: FieldTypeText}
	}
	return defs
}

// CellValue returns the stored cell at (row, col), or the empty string when
// the grid was edited sparsely and the cell was never written.
func (f FieldDefinition) CellValue(row, col int) string {
	if row < 0 || row >= len(f.TableData) {
		return ""
	}
	if col < 0 || col >= len(f.TableData[row]) {
		return ""
	}
	return f.TableData[row][col]
}
