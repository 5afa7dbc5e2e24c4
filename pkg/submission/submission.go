// Package submission turns collected form values into the experiment request
// handed to the backend, and encodes it for transport.
package submission

import (
	"errors"
	"strings"

	"github.com/goliatone/go-chaosform/pkg/model"
)

var (
	// ErrKindMissing is returned when a decoded request does not name a kind.
	ErrKindMissing = errors.New("submission: kind is required")
	// ErrKindMismatch is returned by DecodeFor when the body names another
	// kind.
	ErrKindMismatch = errors.New("submission: kind mismatch")
)

// Request is the assembled experiment request.
type Request struct {
	Kind     string         `json:"kind" yaml:"kind" msgpack:"kind"`
	Category string         `json:"category,omitempty" yaml:"category,omitempty" msgpack:"category,omitempty"`
	Spec     map[string]any `json:"spec" yaml:"spec" msgpack:"spec"`
}

// New assembles values for form into a Request.
func New(form model.Form, values map[string]any) Request {
	return Request{
		Kind:     form.Kind,
		Category: form.Category,
		Spec:     Assemble(form, values),
	}
}

// Assemble shapes flat form values into a spec. Fields with a Group are
// nested under that key; missing values fall back to the field default.
// Keys that do not belong to a field are carried through untouched.
func Assemble(form model.Form, values map[string]any) map[string]any {
	out := make(map[string]any, len(values)+len(form.Fields))
	known := make(map[string]struct{}, len(form.Fields))

	for _, field := range form.Fields {
		known[field.Name] = struct{}{}
		value, ok := values[field.Name]
		if !ok || field.Type == model.FieldTypeFixed {
			value = model.CloneValue(field.Value)
		}
		if field.Group == "" {
			out[field.Name] = value
			continue
		}
		group, ok := out[field.Group].(map[string]any)
		if !ok {
			group = make(map[string]any)
			out[field.Group] = group
		}
		group[field.Name] = value
	}

	for key, value := range values {
		if _, ok := known[key]; ok {
			continue
		}
		if _, taken := out[key]; taken {
			continue
		}
		out[key] = model.CloneValue(value)
	}
	return out
}

// Flatten is the inverse of Assemble: it reads the value of every field of
// form out of spec, looking inside the field's group when it has one.
// Fields absent from spec are left out.
func Flatten(form model.Form, spec map[string]any) map[string]any {
	out := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		source := spec
		if field.Group != "" {
			group, ok := spec[field.Group].(map[string]any)
			if !ok {
				continue
			}
			source = group
		}
		if value, ok := source[field.Name]; ok {
			out[field.Name] = model.CloneValue(value)
		}
	}
	return out
}

// CategoryOf infers the category of a decoded request: the explicit
// Category, else the spec's action, else empty.
func (r Request) CategoryOf() string {
	if c := strings.TrimSpace(r.Category); c != "" {
		return c
	}
	if action, ok := r.Spec["action"].(string); ok {
		return strings.TrimSpace(action)
	}
	return ""
}
