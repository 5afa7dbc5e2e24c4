package model

// FieldType enumerates the input controls a field can request.
type FieldType string

const (
	FieldTypeText         FieldType = "text"
	FieldTypeNumber       FieldType = "number"
	FieldTypeSelect       FieldType = "select"
	FieldTypeLabel        FieldType = "label"
	FieldTypeAutocomplete FieldType = "autocomplete"
	FieldTypeFixed        FieldType = "fixed"
)

// Editable reports whether the field type renders a user-facing control.
func (t FieldType) Editable() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeSelect, FieldTypeLabel, FieldTypeAutocomplete:
		return true
	default:
		return false
	}
}

// Field describes one configuration parameter. Value holds the default the
// form is seeded with; for FieldTypeFixed it is the value submitted as-is.
type Field struct {
	Name       string            `json:"name" yaml:"name"`
	Type       FieldType         `json:"field" yaml:"field"`
	Items      []string          `json:"items,omitempty" yaml:"items,omitempty"`
	IsKV       bool              `json:"isKV,omitempty" yaml:"isKV,omitempty"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Value      any               `json:"value" yaml:"value"`
	HelperText string            `json:"helperText,omitempty" yaml:"helperText,omitempty"`
	InputProps map[string]any    `json:"inputProps,omitempty" yaml:"inputProps,omitempty"`
	Group      string            `json:"group,omitempty" yaml:"group,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DisplayLabel returns the configured label or one derived from the name.
func (f Field) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return DefaultLabeler(f.Name)
}

// Path returns the dotted location of the field inside an assembled
// submission.
func (f Field) Path() string {
	if f.Group == "" {
		return f.Name
	}
	return f.Group + "." + f.Name
}

// Category is a named action variant within an experiment kind.
type Category struct {
	Name string `json:"name" yaml:"name"`
	Key  string `json:"key" yaml:"key"`
	Spec Spec   `json:"spec" yaml:"spec"`
}

// Target describes one experiment kind. Exactly one of Categories or Spec is
// populated.
type Target struct {
	Kind       string     `json:"kind" yaml:"kind"`
	Name       string     `json:"name" yaml:"name"`
	NameKey    string     `json:"nameKey,omitempty" yaml:"nameKey,omitempty"`
	Icon       string     `json:"icon,omitempty" yaml:"icon,omitempty"`
	Categories []Category `json:"categories,omitempty" yaml:"categories,omitempty"`
	Spec       Spec       `json:"spec,omitempty" yaml:"spec,omitempty"`
}

// HasCategories reports whether the target is partitioned into categories.
func (t Target) HasCategories() bool {
	return len(t.Categories) > 0
}

// Category returns the category registered under key.
func (t Target) Category(key string) (Category, bool) {
	for _, category := range t.Categories {
		if category.Key == key {
			return category, true
		}
	}
	return Category{}, false
}

// CategoryKeys lists category keys in registration order.
func (t Target) CategoryKeys() []string {
	if len(t.Categories) == 0 {
		return nil
	}
	keys := make([]string, 0, len(t.Categories))
	for _, category := range t.Categories {
		keys = append(keys, category.Key)
	}
	return keys
}

// Clone returns a deep copy so callers can mutate the result freely.
func (t Target) Clone() Target {
	out := t
	out.Spec = t.Spec.Clone()
	if t.Categories != nil {
		out.Categories = make([]Category, len(t.Categories))
		for i, category := range t.Categories {
			category.Spec = category.Spec.Clone()
			out.Categories[i] = category
		}
	}
	return out
}

// Form is the resolved field list for a single kind/category pair, ready to
// be handed to a renderer.
type Form struct {
	Kind     string            `json:"kind" yaml:"kind"`
	Category string            `json:"category,omitempty" yaml:"category,omitempty"`
	Title    string            `json:"title" yaml:"title"`
	TitleKey string            `json:"titleKey,omitempty" yaml:"titleKey,omitempty"`
	Icon     string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Fields   Spec              `json:"fields" yaml:"fields"`
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}
