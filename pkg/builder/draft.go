// Package builder accumulates field definitions into a form schema through
// small pure operations over an explicit Draft value. Every operation takes a
// Draft and returns an updated copy, so authoring flows are testable without a
// UI harness and no state hides in the component showing the form.
package builder

import "github.com/adas26/txfb/pkg/schema"

// Draft carries a schema under construction plus the transient input that has
// been accumulated for the next field: choice options, table columns, and the
// sparse cell grid.
type Draft struct {
	Title       string
	Description string
	Fields      []schema.FieldDefinition

	// Pending state for the field currently being authored. AddField
	// snapshots and clears all of it.
	PendingOptions []string
	PendingColumns []schema.ColumnDef
	PendingHeaders []string
	PendingCells   [][]string
}

// Schema materialises the draft into a form schema. The field slice is copied
// so later draft edits do not alias the returned document.
func (d Draft) Schema() schema.FormSchema {
	fields := make([]schema.FieldDefinition, len(d.Fields))
	copy(fields, d.Fields)
	return schema.FormSchema{
		FormTitle:   d.Title,
		Description: d.Description,
		Fields:      fields,
	}
}

// nextOrder returns the order assigned to a field added without an explicit
// order: one past the current maximum, or 1 for the first field.
func (d Draft) nextOrder() int {
	max := 0
	for _, field := range d.Fields {
		if field.Order > max {
			max = field.Order
		}
	}
	return max + 1
}

func (d Draft) clearPending() Draft {
	d.PendingOptions = nil
	d.PendingColumns = nil
	d.PendingHeaders = nil
	d.PendingCells = nil
	return d
}
