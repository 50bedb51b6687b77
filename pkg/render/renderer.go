package render

import (
	"context"

	"github.com/adas26/txfb/pkg/schema"
)

// Renderer converts a form schema into a byte representation: an HTML page, a
// filled answer document, anything a registered backend produces.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.FormSchema, options Options) ([]byte, error)
}
