package components

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/schema"
)

// NewDefaultRegistry constructs a registry pre-populated with the built-in
// controls the HTML renderer dispatches to.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister("input", Descriptor{Renderer: inputRenderer})
	registry.MustRegister("textarea", Descriptor{Renderer: textareaRenderer})
	registry.MustRegister("select", Descriptor{Renderer: selectRenderer})
	registry.MustRegister("radio-group", Descriptor{Renderer: radioGroupRenderer})
	registry.MustRegister("checkbox-group", Descriptor{Renderer: checkboxGroupRenderer})
	registry.MustRegister("yesno", Descriptor{Renderer: yesNoRenderer})
	registry.MustRegister("table-editor", Descriptor{Renderer: tableEditorRenderer})
	registry.MustRegister("table-view", Descriptor{Renderer: tableViewRenderer})
	registry.MustRegister("rawhtml", Descriptor{Renderer: rawHTMLRenderer})

	return registry
}

func inputRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	inputType := "text"
	step := ""
	placeholder := ""
	switch field.Type {
	case schema.FieldTypeNumber:
		inputType = "number"
	case schema.FieldTypeCurrency:
		inputType = "number"
		step = "0.01"
	case schema.FieldTypeDate:
		inputType = "date"
	case schema.FieldTypePerson:
		placeholder = "Enter a name or email address"
	}

	var builder strings.Builder
	builder.WriteString(`<input type="`)
	builder.WriteString(inputType)
	builder.WriteString(`"`)
	writeControlIdentity(&builder, field.InternalName)
	if step != "" {
		builder.WriteString(` step="`)
		builder.WriteString(step)
		builder.WriteString(`"`)
	}
	if placeholder != "" {
		builder.WriteString(` placeholder="`)
		builder.WriteString(html.EscapeString(placeholder))
		builder.WriteString(`"`)
	}
	if value := data.Answers.Get(render.FieldKey(field.InternalName)); value != "" {
		builder.WriteString(` value="`)
		builder.WriteString(html.EscapeString(value))
		builder.WriteString(`"`)
	}
	writeControlFlags(&builder, field.Required, data.ReadOnly)
	builder.WriteString(` class="fb-input">`)

	buf.WriteString(builder.String())
	return nil
}

func textareaRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	var builder strings.Builder
	builder.WriteString(`<textarea`)
	writeControlIdentity(&builder, field.InternalName)
	builder.WriteString(` rows="4"`)
	writeControlFlags(&builder, field.Required, data.ReadOnly)
	builder.WriteString(` class="fb-textarea">`)
	builder.WriteString(html.EscapeString(data.Answers.Get(render.FieldKey(field.InternalName))))
	builder.WriteString(`</textarea>`)

	buf.WriteString(builder.String())
	return nil
}

func selectRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	selected := data.Answers.Get(render.FieldKey(field.InternalName))

	var builder strings.Builder
	builder.WriteString(`<select`)
	writeControlIdentity(&builder, field.InternalName)
	writeControlFlags(&builder, field.Required, data.ReadOnly)
	builder.WriteString(` class="fb-select">`)
	builder.WriteString(`<option value="">Select an option</option>`)
	for _, option := range field.Options {
		builder.WriteString(`<option value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if option == selected && option != "" {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)

	buf.WriteString(builder.String())
	return nil
}

func radioGroupRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	selected := data.Answers.Get(render.FieldKey(field.InternalName))

	var builder strings.Builder
	builder.WriteString(`<div class="fb-radio-group" role="radiogroup">`)
	for idx, option := range field.Options {
		id := controlID(field.InternalName) + "-" + strconv.Itoa(idx)
		builder.WriteString(`<label class="fb-radio"><input type="radio" id="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.InternalName))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if option == selected && option != "" {
			builder.WriteString(` checked`)
		}
		writeControlFlags(&builder, field.Required && idx == 0, data.ReadOnly)
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`</label>`)
	}
	builder.WriteString(`</div>`)

	buf.WriteString(builder.String())
	return nil
}

func checkboxGroupRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	key := render.FieldKey(field.InternalName)

	var builder strings.Builder
	builder.WriteString(`<div class="fb-checkbox-group" role="group">`)
	for idx, option := range field.Options {
		id := controlID(field.InternalName) + "-" + strconv.Itoa(idx)
		builder.WriteString(`<label class="fb-checkbox"><input type="checkbox" id="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(field.InternalName))
		builder.WriteString(`" value="`)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`"`)
		if data.Answers.IsSelected(key, option) {
			builder.WriteString(` checked`)
		}
		if data.ReadOnly {
			builder.WriteString(` disabled`)
		}
		builder.WriteString(`> `)
		builder.WriteString(html.EscapeString(option))
		builder.WriteString(`</label>`)
	}
	builder.WriteString(`</div>`)

	buf.WriteString(builder.String())
	return nil
}

func yesNoRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	value := data.Answers.YesNo(render.FieldKey(field.InternalName))

	var builder strings.Builder
	builder.WriteString(`<select`)
	writeControlIdentity(&builder, field.InternalName)
	writeControlFlags(&builder, field.Required, data.ReadOnly)
	builder.WriteString(` class="fb-select">`)
	for _, choice := range []struct{ value, label string }{
		{"false", "No"},
		{"true", "Yes"},
	} {
		builder.WriteString(`<option value="`)
		builder.WriteString(choice.value)
		builder.WriteString(`"`)
		if choice.value == value {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>`)
		builder.WriteString(choice.label)
		builder.WriteString(`</option>`)
	}
	builder.WriteString(`</select>`)

	buf.WriteString(builder.String())
	return nil
}

// tableEditorRenderer emits an editable grid. Every cell is a named control so
// submitted values can round-trip through the answer map.
func tableEditorRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	defs := field.ColumnDefs()

	var builder strings.Builder
	builder.WriteString(`<table class="fb-table"`)
	if name := strings.TrimSpace(field.TableName); name != "" {
		builder.WriteString(` data-table-name="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
	}
	builder.WriteString(`><thead><tr>`)
	for _, def := range defs {
		builder.WriteString(`<th>`)
		builder.WriteString(html.EscapeString(def.Name))
		builder.WriteString(`</th>`)
	}
	builder.WriteString(`</tr></thead><tbody>`)

	for row := 0; row < field.TableRows; row++ {
		builder.WriteString(`<tr>`)
		for col := range defs {
			builder.WriteString(`<td>`)
			writeCellControl(&builder, field, defs[col], row, col, data)
			builder.WriteString(`</td>`)
		}
		builder.WriteString(`</tr>`)
	}
	builder.WriteString(`</tbody></table>`)

	buf.WriteString(builder.String())
	return nil
}

// tableViewRenderer emits a read-only grid from the stored cell values.
func tableViewRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	defs := field.ColumnDefs()

	var builder strings.Builder
	builder.WriteString(`<table class="fb-table fb-table-readonly"`)
	if name := strings.TrimSpace(field.TableName); name != "" {
		builder.WriteString(` data-table-name="`)
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`"`)
	}
	builder.WriteString(`><thead><tr>`)
	for _, def := range defs {
		builder.WriteString(`<th>`)
		builder.WriteString(html.EscapeString(def.Name))
		builder.WriteString(`</th>`)
	}
	builder.WriteString(`</tr></thead><tbody>`)

	for row := 0; row < field.TableRows; row++ {
		builder.WriteString(`<tr>`)
		for col, def := range defs {
			builder.WriteString(`<td>`)
			builder.WriteString(html.EscapeString(cellDisplayValue(field, def, row, col, data.Answers)))
			builder.WriteString(`</td>`)
		}
		builder.WriteString(`</tr>`)
	}
	builder.WriteString(`</tbody></table>`)

	buf.WriteString(builder.String())
	return nil
}

// rawHTMLRenderer passes stored markup through untouched unless a sanitizer is
// configured.
func rawHTMLRenderer(buf *bytes.Buffer, field schema.FieldDefinition, data ComponentData) error {
	content := field.HTMLContent
	if data.Sanitize != nil {
		content = data.Sanitize(content)
	}
	buf.WriteString(content)
	return nil
}

func writeCellControl(builder *strings.Builder, field schema.FieldDefinition, def schema.ColumnDef, row, col int, data ComponentData) {
	key := render.CellKey(field.InternalName, row, col)
	value := data.Answers.Get(key)
	if value == "" {
		value = field.CellValue(row, col)
	}

	switch def.Type {
	case schema.FieldTypeDropdown:
		builder.WriteString(`<select name="`)
		builder.WriteString(html.EscapeString(key))
		builder.WriteString(`"`)
		if data.ReadOnly {
			builder.WriteString(` disabled`)
		}
		builder.WriteString(` class="fb-select">`)
		builder.WriteString(`<option value=""></option>`)
		for _, option := range def.Options {
			builder.WriteString(`<option value="`)
			builder.WriteString(html.EscapeString(option))
			builder.WriteString(`"`)
			if option == value && option != "" {
				builder.WriteString(` selected`)
			}
			builder.WriteString(`>`)
			builder.WriteString(html.EscapeString(option))
			builder.WriteString(`</option>`)
		}
		builder.WriteString(`</select>`)
	case schema.FieldTypeYesNo:
		yes := strings.TrimSpace(value) == "true"
		builder.WriteString(`<select name="`)
		builder.WriteString(html.EscapeString(key))
		builder.WriteString(`"`)
		if data.ReadOnly {
			builder.WriteString(` disabled`)
		}
		builder.WriteString(` class="fb-select">`)
		builder.WriteString(`<option value="false"`)
		if !yes {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>No</option><option value="true"`)
		if yes {
			builder.WriteString(` selected`)
		}
		builder.WriteString(`>Yes</option></select>`)
	default:
		inputType := "text"
		switch def.Type {
		case schema.FieldTypeNumber, schema.FieldTypeCurrency:
			inputType = "number"
		case schema.FieldTypeDate:
			inputType = "date"
		}
		builder.WriteString(`<input type="`)
		builder.WriteString(inputType)
		builder.WriteString(`" name="`)
		builder.WriteString(html.EscapeString(key))
		builder.WriteString(`"`)
		if value != "" {
			builder.WriteString(` value="`)
			builder.WriteString(html.EscapeString(value))
			builder.WriteString(`"`)
		}
		if data.ReadOnly {
			builder.WriteString(` disabled`)
		}
		builder.WriteString(` class="fb-input">`)
	}
}

// cellDisplayValue resolves the read-only display text for one cell. Yes/no
// cells always display a value, defaulting to "false" when blank.
func cellDisplayValue(field schema.FieldDefinition, def schema.ColumnDef, row, col int, answers render.AnswerMap) string {
	key := render.CellKey(field.InternalName, row, col)
	if def.Type == schema.FieldTypeYesNo {
		if v := strings.TrimSpace(answers.Get(key)); v != "" {
			return v
		}
		if v := strings.TrimSpace(field.CellValue(row, col)); v != "" {
			return v
		}
		return "false"
	}
	if v := answers.Get(key); v != "" {
		return v
	}
	return field.CellValue(row, col)
}

func writeControlIdentity(builder *strings.Builder, internalName string) {
	if id := controlID(internalName); id != "" {
		builder.WriteString(` id="`)
		builder.WriteString(html.EscapeString(id))
		builder.WriteString(`"`)
	}
	builder.WriteString(` name="`)
	builder.WriteString(html.EscapeString(internalName))
	builder.WriteString(`"`)
}

func writeControlFlags(builder *strings.Builder, required, readOnly bool) {
	if required {
		builder.WriteString(` required`)
	}
	if readOnly {
		builder.WriteString(` disabled`)
	}
}

func controlID(internalName string) string {
	trimmed := strings.TrimSpace(internalName)
	if trimmed == "" {
		return ""
	}
	return "fb-" + trimmed
}
