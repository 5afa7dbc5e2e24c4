package experiment

import (
	"embed"
	"io/fs"
	"path"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

//go:embed icons/*.svg
var iconFS embed.FS

// loadIcons reads every embedded SVG and sanitizes it, keyed by file stem.
func loadIcons(files fs.FS) (map[string]string, error) {
	entries, err := fs.ReadDir(files, "icons")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".svg" {
			continue
		}
		raw, err := fs.ReadFile(files, path.Join("icons", entry.Name()))
		if err != nil {
			return nil, err
		}
		if cleaned := SanitizeIcon(string(raw)); cleaned != "" {
			out[strings.TrimSuffix(entry.Name(), ".svg")] = cleaned
		}
	}
	return out, nil
}

// SanitizeIcon reduces raw SVG markup to the shapes and paint attributes
// the kind icons use. Scripts, event handlers and foreign elements are
// dropped.
func SanitizeIcon(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(iconPolicy.Sanitize(raw))
}

// iconShapes maps each allowed shape to its geometry attributes.
var iconShapes = map[string][]string{
	"path":     {"d"},
	"circle":   {"cx", "cy", "r"},
	"ellipse":  {"cx", "cy", "rx", "ry"},
	"rect":     {"x", "y", "width", "height", "rx", "ry"},
	"line":     {"x1", "y1", "x2", "y2"},
	"polyline": {"points"},
	"polygon":  {"points"},
}

var iconPaint = []string{"fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "class"}

var iconPolicy = newIconPolicy()

func newIconPolicy() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AllowElements("svg", "g", "title", "desc")
	policy.AllowAttrs("xmlns", "viewBox", "width", "height", "role", "aria-hidden").OnElements("svg")
	policy.AllowAttrs(iconPaint...).OnElements("svg", "g")
	for shape, geometry := range iconShapes {
		policy.AllowAttrs(geometry...).OnElements(shape)
		policy.AllowAttrs(iconPaint...).OnElements(shape)
	}
	return policy
}
