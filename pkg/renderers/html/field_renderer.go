package html

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"

	"go.uber.org/zap"

	"github.com/adas26/txfb/pkg/renderers/html/components"
	"github.com/adas26/txfb/pkg/schema"
)

type fieldRenderer struct {
	registry *components.Registry
	data     components.ComponentData
	logger   *zap.Logger

	usedComponents map[string]struct{}
}

func newFieldRenderer(registry *components.Registry, data components.ComponentData, logger *zap.Logger) *fieldRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &fieldRenderer{
		registry:       registry,
		data:           data,
		logger:         logger,
		usedComponents: make(map[string]struct{}),
	}
}

// render produces the full markup for one field, chrome included. An
// unrecognised field kind is logged and skipped so one bad field never takes
// down the page.
func (r *fieldRenderer) render(field schema.FieldDefinition) (string, error) {
	componentName := componentNameFor(field.Type)
	if componentName == "" {
		r.logger.Warn("skipping field with unrecognised type",
			zap.String("field", field.InternalName),
			zap.String("type", string(field.Type)))
		return "", nil
	}

	descriptor, ok := r.registry.Descriptor(componentName)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", componentName, field.InternalName)
	}

	var control bytes.Buffer
	if err := descriptor.Renderer(&control, field, r.data); err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", componentName, field.InternalName, err)
	}

	r.usedComponents[componentName] = struct{}{}

	return buildFieldMarkup(field, componentName, control.String()), nil
}

func (r *fieldRenderer) assets() (stylesheets []string, scripts []components.Script) {
	if len(r.usedComponents) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	return r.registry.Assets(names)
}

func componentNameFor(fieldType schema.FieldType) string {
	switch fieldType {
	case schema.FieldTypeText, schema.FieldTypeNumber, schema.FieldTypeCurrency,
		schema.FieldTypeDate, schema.FieldTypePerson:
		return "input"
	case schema.FieldTypeMultiline:
		return "textarea"
	case schema.FieldTypeDropdown:
		return "select"
	case schema.FieldTypeRadio:
		return "radio-group"
	case schema.FieldTypeCheckbox:
		return "checkbox-group"
	case schema.FieldTypeYesNo:
		return "yesno"
	case schema.FieldTypeHTMLTable:
		return "table-editor"
	case schema.FieldTypeHTMLRender:
		return "table-view"
	case schema.FieldTypePlainHTML:
		return "rawhtml"
	default:
		return ""
	}
}

func buildFieldMarkup(field schema.FieldDefinition, componentName, control string) string {
	var builder strings.Builder
	builder.Grow(len(control) + 256)

	builder.WriteString(`<div class="fb-field" data-component="`)
	builder.WriteString(stdhtml.EscapeString(componentName))
	builder.WriteString(`" data-field="`)
	builder.WriteString(stdhtml.EscapeString(field.InternalName))
	builder.WriteString("\">\n")

	if shouldRenderLabel(field) {
		builder.WriteString(`    <label for="fb-`)
		builder.WriteString(stdhtml.EscapeString(field.InternalName))
		builder.WriteString(`" class="fb-label">`)
		builder.WriteString(stdhtml.EscapeString(field.Label))
		if field.Required {
			builder.WriteString(` *`)
		}
		builder.WriteString("</label>\n")
	}

	if control != "" {
		for _, line := range strings.Split(control, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			builder.WriteString("    ")
			builder.WriteString(line)
			builder.WriteByte('\n')
		}
	}

	builder.WriteString("</div>\n")
	return builder.String()
}

func shouldRenderLabel(field schema.FieldDefinition) bool {
	if strings.TrimSpace(field.Label) == "" {
		return false
	}
	// Raw markup fields carry their own presentation.
	return field.Type != schema.FieldTypePlainHTML
}
