package render

import (
	"cmp"
	"slices"
	"strings"
)

// HiddenField is a hidden input emitted alongside the visible controls.
type HiddenField struct {
	Name  string
	Value string
}

// FormHiddenFields returns the hidden inputs that let a submitted HTML form
// be routed back to its experiment: kind, category when set, then extras
// such as a CSRF token. Extras win on collisions; the result is sorted by
// name.
func FormHiddenFields(kind, category string, extras map[string]string) []HiddenField {
	byName := map[string]string{"kind": kind}
	if category = strings.TrimSpace(category); category != "" {
		byName["category"] = category
	}
	for name, value := range extras {
		if name = strings.TrimSpace(name); name != "" {
			byName[name] = value
		}
	}

	fields := make([]HiddenField, 0, len(byName))
	for name, value := range byName {
		fields = append(fields, HiddenField{Name: name, Value: value})
	}
	slices.SortFunc(fields, func(a, b HiddenField) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return fields
}
