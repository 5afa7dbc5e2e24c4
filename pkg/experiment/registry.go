package experiment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/submission"
	"github.com/goliatone/go-chaosform/pkg/validation"
)

var (
	// ErrUnknownKind is returned for kinds the registry does not know.
	ErrUnknownKind = errors.New("experiment: unknown kind")
	// ErrUnknownCategory is returned when a category key is not registered
	// for the requested kind.
	ErrUnknownCategory = errors.New("experiment: unknown category")
	// ErrCategoryRequired is returned when a categorized kind is resolved
	// without a category key.
	ErrCategoryRequired = errors.New("experiment: category is required")
)

// Registry maps kinds to their targets and validation rules.
type Registry struct {
	order   []Kind
	targets map[Kind]model.Target
	rules   map[Kind]map[string]validation.Rule
	icons   map[string]string
}

var std = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return std
}

// Lookup resolves kind against the default registry.
func Lookup(kind Kind) (model.Target, bool) {
	return std.Lookup(kind)
}

// ValidationFor returns the rule registered for kind/category in the default
// registry.
func ValidationFor(kind Kind, category string) (validation.Rule, bool) {
	return std.ValidationFor(kind, category)
}

// NewRegistry builds a registry holding the built-in experiment kinds.
func NewRegistry() *Registry {
	icons, err := loadIcons(iconFS)
	if err != nil {
		// embedded assets are compiled in; failing to read them is a build defect
		panic(fmt.Sprintf("experiment: load icons: %v", err))
	}
	reg := &Registry{
		targets: make(map[Kind]model.Target),
		rules:   builtinRules(),
		icons:   icons,
	}
	for _, target := range builtinTargets() {
		kind := Kind(target.Kind)
		reg.order = append(reg.order, kind)
		reg.targets[kind] = target
	}
	return reg
}

// Kinds lists the registered kinds in display order.
func (r *Registry) Kinds() []Kind {
	return append([]Kind(nil), r.order...)
}

// Lookup returns a copy of the target registered for kind.
func (r *Registry) Lookup(kind Kind) (model.Target, bool) {
	target, ok := r.targets[kind]
	if !ok {
		return model.Target{}, false
	}
	return target.Clone(), true
}

// ValidationFor returns the rule for kind and category. An empty category
// selects DefaultCategory.
func (r *Registry) ValidationFor(kind Kind, category string) (validation.Rule, bool) {
	byCategory, ok := r.rules[kind]
	if !ok {
		return nil, false
	}
	rule, ok := byCategory[categoryOrDefault(category)]
	return rule, ok
}

// Icon returns the sanitized SVG markup referenced by kind.
func (r *Registry) Icon(kind Kind) (string, bool) {
	target, ok := r.targets[kind]
	if !ok {
		return "", false
	}
	markup, ok := r.icons[target.Icon]
	return markup, ok
}

// Form resolves the field list for kind and category. Flat kinds accept an
// empty category or DefaultCategory.
func (r *Registry) Form(kind Kind, category string) (model.Form, error) {
	target, ok := r.targets[kind]
	if !ok {
		return model.Form{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	form := model.Form{
		Kind:     target.Kind,
		Title:    target.Name,
		TitleKey: target.NameKey,
		Icon:     target.Icon,
	}

	key := strings.TrimSpace(category)
	if !target.HasCategories() {
		if key != "" && key != DefaultCategory {
			return model.Form{}, fmt.Errorf("%w: %s has no category %q", ErrUnknownCategory, kind, key)
		}
		form.Fields = target.Spec.Clone()
		return form, nil
	}

	if key == "" {
		return model.Form{}, fmt.Errorf("%w: %s accepts %s", ErrCategoryRequired, kind, strings.Join(target.CategoryKeys(), ", "))
	}
	selected, ok := target.Category(key)
	if !ok {
		return model.Form{}, fmt.Errorf("%w: %s has no category %q", ErrUnknownCategory, kind, key)
	}
	form.Category = selected.Key
	form.Fields = selected.Spec.Clone()
	form.Metadata = map[string]string{"category.name": selected.Name}
	return form, nil
}

// InitialValues returns the flat values a form for kind/category is seeded
// with, fixed entries included.
func (r *Registry) InitialValues(kind Kind, category string) (map[string]any, error) {
	form, err := r.Form(kind, category)
	if err != nil {
		return nil, err
	}
	return form.Fields.Defaults(), nil
}

// Validate checks an assembled spec against the rule for kind/category.
// Pairs without a rule are valid.
func (r *Registry) Validate(kind Kind, category string, spec map[string]any) validation.Result {
	rule, ok := r.ValidationFor(kind, category)
	if !ok {
		return validation.Result{Valid: true}
	}
	return validation.Validate(rule, spec)
}

// ValidateValues assembles flat form values into a spec and validates it.
func (r *Registry) ValidateValues(kind Kind, category string, values map[string]any) (validation.Result, error) {
	form, err := r.Form(kind, category)
	if err != nil {
		return validation.Result{}, err
	}
	return r.Validate(kind, category, submission.Assemble(form, values)), nil
}

func categoryOrDefault(category string) string {
	if key := strings.TrimSpace(category); key != "" {
		return key
	}
	return DefaultCategory
}
