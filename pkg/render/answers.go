package render

import (
	"strconv"
	"strings"
)

// AnswerMap holds user-entered values during form fill-in, keyed per field or
// per table cell. Values are strings; multi-select answers are stored as one
// comma-joined string. The map is runtime state only and is never persisted
// with the schema.
type AnswerMap map[string]string

// FieldKey returns the answer key for a scalar field.
func FieldKey(internalName string) string {
	return internalName
}

// CellKey returns the answer key for one cell of a table field.
func CellKey(internalName string, row, col int) string {
	return internalName + "." + strconv.Itoa(row) + "." + strconv.Itoa(col)
}

// Get returns the stored value for key, or the empty string.
func (a AnswerMap) Get(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Set stores a value, allocating the map on first write. It returns the map so
// nil receivers can be used fluently.
func (a AnswerMap) Set(key, value string) AnswerMap {
	if a == nil {
		a = make(AnswerMap)
	}
	a[key] = value
	return a
}

// YesNo returns the stored answer for a yes/no control, defaulting to "false"
// when unset. An explicit "No" must always display; a blank never should.
func (a AnswerMap) YesNo(key string) string {
	if a == nil {
		return "false"
	}
	if v, ok := a[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return "false"
}

// Selected splits a checkbox answer into its selected option strings.
func (a AnswerMap) Selected(key string) []string {
	raw := a.Get(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SetSelected stores a checkbox answer as the comma-joined option set. An
// empty selection removes the key.
func (a AnswerMap) SetSelected(key string, options []string) AnswerMap {
	kept := make([]string, 0, len(options))
	for _, opt := range options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		if a != nil {
			delete(a, key)
		}
		return a
	}
	return a.Set(key, strings.Join(kept, ","))
}

// IsSelected reports whether option is part of the stored selection for key.
func (a AnswerMap) IsSelected(key, option string) bool {
	for _, selected := range a.Selected(key) {
		if selected == option {
			return true
		}
	}
	return false
}
