// Package chaosform is the top-level entry point for building chaos
// experiment forms. It wires the experiment registry to the HTML renderer,
// the validators and the HTTP API so callers that only need one of those do
// not have to assemble the packages themselves.
package chaosform

import (
	"context"
	"net/http"

	"github.com/goliatone/go-chaosform/pkg/experiment"
	"github.com/goliatone/go-chaosform/pkg/httpapi"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/renderers/html"
	"github.com/goliatone/go-chaosform/pkg/submission"
	"github.com/goliatone/go-chaosform/pkg/validation"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Request is an assembled experiment submission.
type Request = submission.Request

// GenerateHTML renders the form of kind/category as an HTML fragment. Values
// in opts override the field defaults.
func GenerateHTML(ctx context.Context, kind, category string, opts RenderOptions) ([]byte, error) {
	reg := experiment.Default()
	parsed, err := experiment.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	form, err := reg.Form(parsed, category)
	if err != nil {
		return nil, err
	}

	renderer, err := html.New(html.WithIcons(IconSource(reg)))
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, opts)
}

// Validate checks an assembled spec against the rule for kind/category.
func Validate(kind, category string, spec map[string]any) (validation.Result, error) {
	parsed, err := experiment.ParseKind(kind)
	if err != nil {
		return validation.Result{}, err
	}
	reg := experiment.Default()
	form, err := reg.Form(parsed, category)
	if err != nil {
		return validation.Result{}, err
	}
	return reg.Validate(parsed, form.Category, spec), nil
}

// NewHandler returns the HTTP API over the default registry with HTML form
// fragments enabled.
func NewHandler(options ...httpapi.Option) (http.Handler, error) {
	reg := experiment.Default()
	forms, err := html.New(html.WithIcons(IconSource(reg)))
	if err != nil {
		return nil, err
	}
	return httpapi.NewHandler(reg, append([]httpapi.Option{httpapi.WithFormRenderer(forms)}, options...)...), nil
}

// IconSource adapts reg to the HTML renderer's icon lookup.
func IconSource(reg *experiment.Registry) html.IconSource {
	return func(kind string) (string, bool) {
		parsed, err := experiment.ParseKind(kind)
		if err != nil {
			return "", false
		}
		return reg.Icon(parsed)
	}
}
