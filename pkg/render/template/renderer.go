// Package template defines the renderer-agnostic template seam. Renderers
// depend on the interface; the pongo subpackage provides the default engine.
package template

import "io"

// TemplateRenderer abstracts a named-template engine. RenderTemplate resolves
// a template by name; RenderString treats its first argument as inline
// template content.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
