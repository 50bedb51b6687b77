// Package tui fills a form schema interactively from the terminal. Each field
// kind maps to a prompt; collected answers are serialized using the answer-map
// key convention so they can round-trip into the HTML renderer.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/adas26/txfb/pkg/render"
	"github.com/adas26/txfb/pkg/schema"
)

type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	return r, nil
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts for every field in sequence and serializes the collected
// answers. Pre-seeded answers become prompt defaults.
func (r *Renderer) Render(ctx context.Context, form schema.FormSchema, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	answers := make(render.AnswerMap, len(options.Answers))
	for key, value := range options.Answers {
		answers[key] = value
	}

	for _, field := range form.Fields {
		if err := r.promptField(ctx, field, answers, logger); err != nil {
			return nil, err
		}
	}

	return r.serialize(answers)
}

func (r *Renderer) promptField(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap, logger *zap.Logger) error {
	switch field.Type {
	case schema.FieldTypeText, schema.FieldTypePerson, schema.FieldTypeDate:
		return r.promptText(ctx, field, answers)
	case schema.FieldTypeMultiline:
		return r.promptMultiline(ctx, field, answers)
	case schema.FieldTypeNumber, schema.FieldTypeCurrency:
		return r.promptNumber(ctx, field, answers)
	case schema.FieldTypeDropdown, schema.FieldTypeRadio:
		return r.promptSelect(ctx, field, answers)
	case schema.FieldTypeCheckbox:
		return r.promptMultiSelect(ctx, field, answers)
	case schema.FieldTypeYesNo:
		return r.promptYesNo(ctx, field, answers)
	case schema.FieldTypeHTMLTable:
		return r.promptTable(ctx, field, answers)
	case schema.FieldTypeHTMLRender, schema.FieldTypePlainHTML:
		// Display-only kinds; nothing to collect.
		return r.driver.Info(ctx, fmt.Sprintf("%s (read-only)", displayLabel(field)))
	default:
		logger.Warn("skipping field with unrecognised type",
			zap.String("field", field.InternalName),
			zap.String("type", string(field.Type)))
		return nil
	}
}

func (r *Renderer) promptText(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	key := render.FieldKey(field.InternalName)
	cfg := InputConfig{
		Message: displayLabel(field),
		Default: answers.Get(key),
	}
	if field.Type == schema.FieldTypeDate {
		cfg.Help = "YYYY-MM-DD"
	}

	for {
		response, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return err
		}
		if field.Required && strings.TrimSpace(response) == "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s is required", displayLabel(field)))
			continue
		}
		answers.Set(key, response)
		return nil
	}
}

func (r *Renderer) promptMultiline(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	key := render.FieldKey(field.InternalName)
	for {
		response, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: displayLabel(field),
			Default: answers.Get(key),
		})
		if err != nil {
			return err
		}
		if field.Required && strings.TrimSpace(response) == "" {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s is required", displayLabel(field)))
			continue
		}
		answers.Set(key, response)
		return nil
	}
}

func (r *Renderer) promptNumber(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	key := render.FieldKey(field.InternalName)
	for {
		response, err := r.driver.Input(ctx, InputConfig{
			Message: displayLabel(field),
			Default: answers.Get(key),
		})
		if err != nil {
			return err
		}
		trimmed := strings.TrimSpace(response)
		if trimmed == "" {
			if field.Required {
				_ = r.driver.Info(ctx, fmt.Sprintf("%s is required", displayLabel(field)))
				continue
			}
			answers.Set(key, "")
			return nil
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s must be a number", displayLabel(field)))
			continue
		}
		answers.Set(key, trimmed)
		return nil
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	key := render.FieldKey(field.InternalName)
	defaultIdx := indexOf(field.Options, answers.Get(key))

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(field),
			Options:      field.Options,
			DefaultIndex: defaultIdx,
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(field.Options) {
			_ = r.driver.Info(ctx, fmt.Sprintf("Invalid %s selection", displayLabel(field)))
			continue
		}
		answers.Set(key, field.Options[idx])
		return nil
	}
}

func (r *Renderer) promptMultiSelect(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	key := render.FieldKey(field.InternalName)
	defaults := indicesOf(field.Options, answers.Selected(key))

	for {
		indices, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  displayLabel(field),
			Options:  field.Options,
			Defaults: defaults,
		})
		if err != nil {
			return err
		}
		selected := defaultsFromIndices(field.Options, indices)
		if field.Required && len(selected) == 0 {
			_ = r.driver.Info(ctx, fmt.Sprintf("%s requires at least one selection", displayLabel(field)))
			continue
		}
		answers.SetSelected(key, selected)
		return nil
	}
}

func (r *Renderer) promptYesNo(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	key := render.FieldKey(field.InternalName)
	response, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: displayLabel(field),
		Default: answers.YesNo(key) == "true",
	})
	if err != nil {
		return err
	}
	answers.Set(key, strconv.FormatBool(response))
	return nil
}

// promptTable walks the grid row by row. Cell prompts follow the column's
// control kind.
func (r *Renderer) promptTable(ctx context.Context, field schema.FieldDefinition, answers render.AnswerMap) error {
	defs := field.ColumnDefs()
	if len(defs) == 0 || field.TableRows <= 0 {
		return nil
	}

	if name := strings.TrimSpace(field.TableName); name != "" {
		if err := r.driver.Info(ctx, name); err != nil {
			return err
		}
	}

	for row := 0; row < field.TableRows; row++ {
		for col, def := range defs {
			key := render.CellKey(field.InternalName, row, col)
			label := fmt.Sprintf("%s [row %d]", def.Name, row+1)

			current := answers.Get(key)
			if current == "" {
				current = field.CellValue(row, col)
			}

			switch def.Type {
			case schema.FieldTypeDropdown:
				idx, err := r.driver.Select(ctx, SelectConfig{
					Message:      label,
					Options:      def.Options,
					DefaultIndex: indexOf(def.Options, current),
				})
				if err != nil {
					return err
				}
				if idx >= 0 && idx < len(def.Options) {
					answers.Set(key, def.Options[idx])
				}
			case schema.FieldTypeYesNo:
				response, err := r.driver.Confirm(ctx, ConfirmConfig{
					Message: label,
					Default: strings.TrimSpace(current) == "true",
				})
				if err != nil {
					return err
				}
				answers.Set(key, strconv.FormatBool(response))
			default:
				response, err := r.driver.Input(ctx, InputConfig{
					Message: label,
					Default: current,
				})
				if err != nil {
					return err
				}
				answers.Set(key, response)
			}
		}
	}
	return nil
}

func (r *Renderer) serialize(answers render.AnswerMap) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for key, value := range answers {
			values.Set(key, value)
		}
		return []byte(values.Encode()), nil
	case OutputFormatPrettyText:
		keys := make([]string, 0, len(answers))
		for key := range answers {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "%s=%s\n", key, answers[key])
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(answers)
	}
}

func displayLabel(field schema.FieldDefinition) string {
	if field.Label != "" {
		return field.Label
	}
	return field.InternalName
}
