package widgets

import (
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-chaosform/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText        = "text"
	WidgetNumber      = "number"
	WidgetSelect      = "select"
	WidgetChips       = "chips"
	WidgetKeyValue    = "key-value"
	WidgetMultiSelect = "multi-select"
	WidgetHidden      = "hidden"
)

// Matcher reports whether a widget can draw field.
type Matcher func(field model.Field) bool

type candidate struct {
	widget   string
	priority int
	matches  Matcher
}

// Registry picks the control each field is drawn with. Candidates are kept
// sorted by descending priority; equal priorities keep registration order.
// A registry with no candidates resolves nothing.
type Registry struct {
	mu         sync.RWMutex
	candidates []candidate
}

var _ model.Decorator = (*Registry)(nil)

// NewRegistry returns a registry holding the built-in widgets.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds widget with the given priority. Blank names and nil
// matchers are ignored.
func (r *Registry) Register(widget string, priority int, matcher Matcher) {
	widget = strings.TrimSpace(widget)
	if r == nil || matcher == nil || widget == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	at := sort.Search(len(r.candidates), func(i int) bool {
		return r.candidates[i].priority < priority
	})
	r.candidates = slices.Insert(r.candidates, at, candidate{widget: widget, priority: priority, matches: matcher})
}

// Resolve returns the widget for field. An explicit Metadata["widget"] is
// returned as-is.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Metadata["widget"]); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.candidates {
		if c.matches(field) {
			return c.widget, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator. Every field of the form gets
// Metadata["widget"] set to its resolved control. The spec slice is replaced,
// not edited, so registry-owned specs stay untouched.
func (r *Registry) Decorate(form *model.Form) error {
	if r == nil || form == nil || len(form.Fields) == 0 {
		return nil
	}
	decorated := make(model.Spec, len(form.Fields))
	for idx, field := range form.Fields {
		field = field.Clone()
		widget, ok := r.Resolve(field)
		if ok {
			if field.Metadata == nil {
				field.Metadata = map[string]string{}
			}
			field.Metadata["widget"] = widget
		}
		decorated[idx] = field
	}
	form.Fields = decorated
	return nil
}

// WidgetOf returns the decorated widget of field, resolving with the default
// matchers when Decorate has not run.
func WidgetOf(field model.Field) string {
	widget, _ := defaultRegistry.Resolve(field)
	return widget
}

var defaultRegistry = NewRegistry()

func (r *Registry) registerBuiltins() {
	r.Register(WidgetHidden, 100, func(field model.Field) bool {
		return field.Type == model.FieldTypeFixed
	})
	r.Register(WidgetKeyValue, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeLabel && field.IsKV
	})
	r.Register(WidgetChips, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeLabel
	})
	r.Register(WidgetMultiSelect, 70, func(field model.Field) bool {
		return field.Type == model.FieldTypeAutocomplete
	})
	r.Register(WidgetSelect, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeSelect || len(field.Items) > 0
	})
	r.Register(WidgetNumber, 50, func(field model.Field) bool {
		return field.Type == model.FieldTypeNumber
	})
	r.Register(WidgetText, 0, func(model.Field) bool {
		return true
	})
}
