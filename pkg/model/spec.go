package model

// Spec is an ordered set of field specifications keyed by Field.Name.
type Spec []Field

// Field returns the entry registered under name.
func (s Spec) Field(name string) (Field, bool) {
	for _, field := range s {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Names lists field names in order.
func (s Spec) Names() []string {
	if len(s) == 0 {
		return nil
	}
	names := make([]string, 0, len(s))
	for _, field := range s {
		names = append(names, field.Name)
	}
	return names
}

// Editable drops fixed entries, keeping the fields that render a control.
func (s Spec) Editable() Spec {
	var out Spec
	for _, field := range s {
		if field.Type.Editable() {
			out = append(out, field.Clone())
		}
	}
	return out
}

// Clone deep-copies every field.
func (s Spec) Clone() Spec {
	if s == nil {
		return nil
	}
	out := make(Spec, len(s))
	for i, field := range s {
		out[i] = field.Clone()
	}
	return out
}

// Compose merges shared blocks into own. Entries declared in own always win:
// a shared field is appended only when own (or an earlier shared block) does
// not already define that name. The result lists own fields first.
func Compose(own Spec, shared ...Spec) Spec {
	out := own.Clone()
	seen := make(map[string]struct{}, len(out))
	for _, field := range out {
		seen[field.Name] = struct{}{}
	}
	for _, block := range shared {
		for _, field := range block {
			if _, exists := seen[field.Name]; exists {
				continue
			}
			seen[field.Name] = struct{}{}
			out = append(out, field.Clone())
		}
	}
	return out
}

// Defaults returns the initial value of every field keyed by name.
func (s Spec) Defaults() map[string]any {
	out := make(map[string]any, len(s))
	for _, field := range s {
		out[field.Name] = CloneValue(field.Value)
	}
	return out
}

// Clone deep-copies the field, including its default value.
func (f Field) Clone() Field {
	out := f
	out.Value = CloneValue(f.Value)
	if f.Items != nil {
		out.Items = append([]string(nil), f.Items...)
	}
	if f.InputProps != nil {
		out.InputProps = make(map[string]any, len(f.InputProps))
		for k, v := range f.InputProps {
			out.InputProps[k] = CloneValue(v)
		}
	}
	if f.Metadata != nil {
		out.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// CloneValue deep-copies maps and slices commonly found in default values.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = CloneValue(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = CloneValue(v)
		}
		return clone
	case []string:
		return append([]string{}, typed...)
	default:
		return typed
	}
}
