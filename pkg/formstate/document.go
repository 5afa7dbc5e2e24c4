// Package formstate holds the values of a form being edited, addressed by
// dotted paths ("delay.latency", "attr.0"). Label editors bind to a Document
// through the Tokens/SetTokens accessor pair.
package formstate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-chaosform/pkg/model"
)

var (
	// ErrEmptyPath is returned when a write targets the document root.
	ErrEmptyPath = errors.New("formstate: path is required")
)

// Document tracks collected values and field errors keyed by dotted paths.
// It is safe for concurrent use.
type Document struct {
	mu     sync.RWMutex
	values map[string]any
	errors map[string][]string
}

// New seeds a document with prefilled values and errors. Both maps are
// deep-copied.
func New(prefill map[string]any, errs map[string][]string) *Document {
	doc := &Document{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for k, v := range prefill {
		doc.values[k] = model.CloneValue(v)
	}
	for k, v := range errs {
		doc.errors[k] = append([]string(nil), v...)
	}
	return doc
}

// Values returns a deep copy of the current values.
func (d *Document) Values() map[string]any {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out, _ := model.CloneValue(d.values).(map[string]any)
	return out
}

// Get resolves a dotted path.
func (d *Document) Get(path string) (any, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return getPath(d.values, path)
}

// Set writes value at path, creating intermediate maps and slices.
func (d *Document) Set(path string, value any) error {
	if d == nil {
		return errors.New("formstate: document is nil")
	}
	if strings.TrimSpace(path) == "" {
		return ErrEmptyPath
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.values == nil {
		d.values = make(map[string]any)
	}
	return setPath(d.values, strings.Split(path, "."), value)
}

// Tokens returns the string list stored at path. Non-string items are
// formatted with fmt.Sprint; a missing path yields nil.
func (d *Document) Tokens(path string) []string {
	value, ok := d.Get(path)
	if !ok {
		return nil
	}
	switch typed := value.(type) {
	case []string:
		return append([]string{}, typed...)
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if s, ok := item.(string); ok {
				out = append(out, s)
				continue
			}
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

// SetTokens replaces the list stored at path. Write failures are dropped:
// the accessor contract has no error channel and a path rejected here was
// never addressable by the editor in the first place.
func (d *Document) SetTokens(path string, tokens []string) {
	_ = d.Set(path, append([]string{}, tokens...))
}

// Errors returns a copy of every recorded error keyed by path.
func (d *Document) Errors() map[string][]string {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]string, len(d.errors))
	for k, v := range d.errors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ErrorsFor returns the errors attached to path.
func (d *Document) ErrorsFor(path string) []string {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.errors[path]...)
}

// SetErrors replaces the errors recorded for path. Passing no messages clears
// them.
func (d *Document) SetErrors(path string, messages ...string) {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(messages) == 0 {
		delete(d.errors, path)
		return
	}
	if d.errors == nil {
		d.errors = make(map[string][]string)
	}
	d.errors[path] = append([]string(nil), messages...)
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		case []string:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// setPath writes value below node and returns the (possibly reallocated)
// container so slice growth propagates to the parent.
func setPath(root map[string]any, segments []string, value any) error {
	_, err := setInto(root, segments, value)
	return err
}

func setInto(node any, segments []string, value any) (any, error) {
	segment := segments[0]
	last := len(segments) == 1

	switch container := node.(type) {
	case map[string]any:
		if last {
			container[segment] = value
			return container, nil
		}
		child, err := setInto(childFor(container[segment], segments[1]), segments[1:], value)
		if err != nil {
			return nil, err
		}
		container[segment] = child
		return container, nil

	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("formstate: expected numeric segment, got %q", segment)
		}
		if idx < 0 {
			return nil, fmt.Errorf("formstate: negative index %d", idx)
		}
		if len(container) <= idx {
			container = append(container, make([]any, idx+1-len(container))...)
		}
		if last {
			container[idx] = value
			return container, nil
		}
		child, err := setInto(childFor(container[idx], segments[1]), segments[1:], value)
		if err != nil {
			return nil, err
		}
		container[idx] = child
		return container, nil

	default:
		return nil, fmt.Errorf("formstate: unexpected container for segment %q", segment)
	}
}

// childFor returns existing when it is a container, otherwise a fresh one
// shaped for the next segment.
func childFor(existing any, next string) any {
	switch typed := existing.(type) {
	case map[string]any:
		return typed
	case []any:
		return typed
	case []string:
		out := make([]any, len(typed))
		for i, s := range typed {
			out[i] = s
		}
		return out
	}
	if _, err := strconv.Atoi(next); err == nil {
		return []any{}
	}
	return make(map[string]any)
}
