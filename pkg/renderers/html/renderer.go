// Package html renders a form schema to a standalone HTML document. Control
// markup is built per field kind by the components registry; the surrounding
// page chrome comes from pongo2 templates that themes can override.
package html

import (
	"context"
	"fmt"
	stdhtml "html"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/adas26/txfb/pkg/render"
	rendertemplate "github.com/adas26/txfb/pkg/render/template"
	"github.com/adas26/txfb/pkg/render/template/pongo"
	"github.com/adas26/txfb/pkg/renderers/html/components"
	"github.com/adas26/txfb/pkg/schema"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	sanitize         func(string) string
}

// WithTemplatesFS supplies an alternate chrome template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads chrome templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponents replaces the default control registry.
func WithComponents(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithSanitizer filters raw markup fields through the strict HTML policy
// before output. Off by default: stored markup is trusted author content and
// historically rendered verbatim.
func WithSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = SanitizeHTML
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	sanitize  func(string) string
}

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}
	if cfg.registry == nil {
		cfg.registry = components.NewDefaultRegistry()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := pongo.New(
			pongo.WithFS(cfg.templateFS),
			pongo.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		registry:  cfg.registry,
		sanitize:  cfg.sanitize,
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the full form document. Fields arrive pre-sorted in the
// schema; they are emitted in sequence.
func (r *Renderer) Render(_ context.Context, form schema.FormSchema, options render.Options) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	data := components.ComponentData{
		Template: r.templates,
		Answers:  options.Answers,
		ReadOnly: options.ReadOnly,
		Sanitize: r.sanitize,
	}
	var themePartials map[string]string
	if options.Theme != nil {
		themePartials = options.Theme.Partials
	}
	data.ThemePartials = themePartials

	fields := newFieldRenderer(r.registry, data, logger)

	var body strings.Builder
	for _, field := range form.Fields {
		markup, err := fields.render(field)
		if err != nil {
			return nil, fmt.Errorf("html renderer: %w", err)
		}
		body.WriteString(markup)
	}

	title := strings.TrimSpace(form.FormTitle)
	if title == "" {
		title = schema.DefaultTitle
	}

	stylesheets, scripts := fields.assets()

	result, err := r.templates.RenderTemplate(chromeTemplate(themePartials), map[string]any{
		"title":         title,
		"description":   form.Description,
		"fields_html":   body.String(),
		"hidden_fields": hiddenFieldMarkup(options.HiddenFields),
		"css_vars":      cssVarsStyle(options.Theme),
		"stylesheets":   stylesheets,
		"scripts":       scriptMarkup(scripts),
		"read_only":     options.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func chromeTemplate(partials map[string]string) string {
	if candidate := strings.TrimSpace(partials["form.chrome"]); candidate != "" {
		return candidate
	}
	return "templates/form.tmpl"
}

func hiddenFieldMarkup(hidden map[string]string) string {
	if len(hidden) == 0 {
		return ""
	}
	names := make([]string, 0, len(hidden))
	for name := range hidden {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	for _, name := range names {
		builder.WriteString(`<input type="hidden" name="`)
		builder.WriteString(stdhtml.EscapeString(name))
		builder.WriteString(`" value="`)
		builder.WriteString(stdhtml.EscapeString(hidden[name]))
		builder.WriteString("\">\n")
	}
	return builder.String()
}

func scriptMarkup(scripts []components.Script) string {
	if len(scripts) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, script := range scripts {
		builder.WriteString(`<script`)
		if script.Module {
			builder.WriteString(` type="module"`)
		}
		if script.Src != "" {
			builder.WriteString(` src="`)
			builder.WriteString(stdhtml.EscapeString(script.Src))
			builder.WriteString(`"></script>`)
		} else {
			builder.WriteString(`>`)
			builder.WriteString(script.Inline)
			builder.WriteString(`</script>`)
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// cssVarsStyle flattens theme CSS variables into an inline style payload,
// sorted for deterministic output.
func cssVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(cfg.CSSVars[key])
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}
