package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a schema document authored as YAML. The document is decoded
// into a generic tree and re-encoded as JSON so the canonical field tags apply
// to both wire formats.
func FromYAML(data []byte) (FormSchema, error) {
	if strings.TrimSpace(string(data)) == "" {
		return FormSchema{}, nil
	}

	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return FormSchema{}, fmt.Errorf("schema: parse yaml document: %w", err)
	}

	payload, err := json.Marshal(tree)
	if err != nil {
		return FormSchema{}, fmt.Errorf("schema: normalise yaml document: %w", err)
	}
	return Unmarshal(payload)
}
