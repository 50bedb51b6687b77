package render

import (
	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"
)

// Options carry per-request data renderers can use to customise output without
// mutating the schema itself.
type Options struct {
	// Answers pre-populates rendered controls. Keys follow the answer-map
	// convention: the field's internal name, or internalName.row.col for
	// table cells.
	Answers AnswerMap

	// ReadOnly renders every control disabled; htmlrender fields are always
	// read-only regardless of this flag.
	ReadOnly bool

	// HiddenFields are emitted as hidden inputs alongside the visible form
	// (CSRF tokens, version markers).
	HiddenFields map[string]string

	// Theme optionally overrides chrome template partials and injects CSS
	// variables for the host page.
	Theme *theme.RendererConfig

	// Logger receives diagnostics such as unknown field kinds. Renderers
	// fall back to a nop logger when nil.
	Logger *zap.Logger
}
