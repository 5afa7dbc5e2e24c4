package html

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var templateFS embed.FS

// Templates returns the embedded pongo2 templates rooted at the template
// directory.
func Templates() fs.FS {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return templateFS
	}
	return sub
}
