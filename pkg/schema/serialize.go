package schema

import (
	"encoding/json"
	"sort"
	"strings"
)

// ParseError wraps a JSON decoding failure for a stored configuration. Callers
// are expected to catch it and degrade (render nothing, show a placeholder)
// rather than surface a crash.
type ParseError struct {
	cause error
}

func (e *ParseError) Error() string {
	return "schema: parse configuration: " + e.cause.Error()
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

// Marshal serialises a form schema to its canonical JSON document. Fields are
// stable-sorted by Order first, so on-disk field order always matches numeric
// order regardless of insertion order; equal orders keep their relative
// position.
func Marshal(form FormSchema) ([]byte, error) {
	if len(form.Fields) > 0 {
		sorted := make([]FieldDefinition, len(form.Fields))
		copy(sorted, form.Fields)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Order < sorted[j].Order
		})
		form.Fields = sorted
	}
	return json.Marshal(form)
}

// Unmarshal parses a stored configuration document. Malformed JSON returns a
// *ParseError. Missing or blank input is not an error: it deserialises to the
// zero schema so callers can fall back to placeholder metadata.
func Unmarshal(data []byte) (FormSchema, error) {
	if strings.TrimSpace(string(data)) == "" {
		return FormSchema{}, nil
	}
	var form FormSchema
	if err := json.Unmarshal(data, &form); err != nil {
		return FormSchema{}, &ParseError{cause: err}
	}
	return form, nil
}
