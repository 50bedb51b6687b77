package html

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templatesFS embed.FS

// TemplatesFS exposes the embedded chrome template bundle.
func TemplatesFS() fs.FS {
	return templatesFS
}
