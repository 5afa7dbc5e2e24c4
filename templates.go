package chaosform

import (
	"io/fs"

	"github.com/goliatone/go-chaosform/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in pongo2 templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.Templates()
}
