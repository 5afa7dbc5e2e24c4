package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-chaosform/pkg/model"
)

// ErrorMapping splits an error payload into messages that belong to a field
// of the form, keyed by field path ("loss.loss", "container_name"), and
// messages that belong to the form as a whole.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// envelopeKeys prefix the spec in backend payloads ("/spec/loss/loss",
// "body.direction") and are skipped when resolving a path.
var envelopeKeys = map[string]bool{
	"body":    true,
	"request": true,
	"payload": true,
	"data":    true,
	"spec":    true,
}

// formKeys address the whole form rather than one field.
var formKeys = map[string]bool{
	"":                 true,
	"form":             true,
	"__all__":          true,
	"non_field_errors": true,
	"non-field-errors": true,
}

// MergeFormErrors appends extras to existing, trimming each message and
// keeping the first occurrence of duplicates.
func MergeFormErrors(existing []string, extras ...string) []string {
	return dedupeMessages(append(append([]string{}, existing...), extras...))
}

// MapErrorPayload assigns every message of payload to a field of form. Keys
// may be JSON pointers ("/spec/loss/loss"), dotted paths ("loss.loss") or
// carry array indexes ("external_targets[1]"); the deepest field path a key
// starts with wins. Keys matching no field become form-level messages.
func MapErrorPayload(form model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	index := indexFieldPaths(form.Fields)

	for key, messages := range payload {
		messages = dedupeMessages(messages)
		if len(messages) == 0 {
			continue
		}
		if path, ok := index.resolve(key); ok {
			mapping.Fields[path] = append(mapping.Fields[path], messages...)
			continue
		}
		mapping.Form = append(mapping.Form, messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = dedupeMessages(mapping.Form)
	return mapping
}

// fieldIndex holds every addressable path of a form: each field's Path and
// each group name on its own.
type fieldIndex map[string]struct{}

func indexFieldPaths(fields model.Spec) fieldIndex {
	index := make(fieldIndex, len(fields))
	for _, field := range fields {
		if strings.TrimSpace(field.Name) == "" {
			continue
		}
		if field.Group != "" {
			index[field.Group] = struct{}{}
		}
		index[field.Path()] = struct{}{}
	}
	return index
}

func (idx fieldIndex) resolve(key string) (string, bool) {
	if formKeys[strings.ToLower(strings.TrimSpace(key))] {
		return "", false
	}
	segments := splitErrorKey(key)

	// The unwrapped form is tried second so a field literally named like an
	// envelope key ("data") still resolves.
	best := idx.longestPrefix(segments)
	start := 0
	for start < len(segments) && envelopeKeys[strings.ToLower(segments[start])] {
		start++
	}
	if start > 0 {
		if candidate := idx.longestPrefix(segments[start:]); strings.Count(candidate, ".") > strings.Count(best, ".") || best == "" {
			best = candidate
		}
	}
	return best, best != ""
}

func (idx fieldIndex) longestPrefix(segments []string) string {
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := idx[candidate]; ok {
			return candidate
		}
	}
	return ""
}

// splitErrorKey breaks a pointer, dotted path or bracketed path into its
// named segments. Array indexes are dropped so item errors land on the list
// field itself.
func splitErrorKey(key string) []string {
	parts := strings.FieldsFunc(strings.TrimSpace(key), func(r rune) bool {
		switch r {
		case '/', '.', '[', ']', '#', '$':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.Atoi(part); err == nil {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

func dedupeMessages(messages []string) []string {
	var out []string
	seen := make(map[string]bool, len(messages))
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message == "" || seen[message] {
			continue
		}
		seen[message] = true
		out = append(out, message)
	}
	return out
}
