package html

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-chaosform/pkg/formstate"
	"github.com/goliatone/go-chaosform/pkg/labelfield"
	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/widgets"
)

const (
	formTemplate  = "form.tpl"
	emptyOption   = "(none)"
	contentType   = "text/html; charset=utf-8"
	defaultSubmit = "Submit"
)

// IconSource resolves the sanitized SVG markup for a kind.
type IconSource func(kind string) (string, bool)

// Option configures the HTML renderer.
type Option func(*Renderer)

// WithIcons supplies the icon markup shown in the form header.
func WithIcons(src IconSource) Option {
	return func(r *Renderer) {
		r.icons = src
	}
}

// WithAction sets the form action URL.
func WithAction(action string) Option {
	return func(r *Renderer) {
		r.action = strings.TrimSpace(action)
	}
}

// WithWidgets overrides the widget registry used to pick controls.
func WithWidgets(reg *widgets.Registry) Option {
	return func(r *Renderer) {
		if reg != nil {
			r.widgets = reg
		}
	}
}

// Renderer renders experiment forms as HTML fragments through pongo2.
type Renderer struct {
	mu       sync.Mutex
	set      *pongo2.TemplateSet
	template *pongo2.Template
	icons    IconSource
	action   string
	widgets  *widgets.Registry
}

var _ render.Renderer = (*Renderer)(nil)

// New compiles the embedded templates.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		set:     pongo2.NewSet("chaosform", pongo2.NewFSLoader(Templates())),
		widgets: widgets.NewRegistry(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	tmpl, err := r.set.FromFile(formTemplate)
	if err != nil {
		return nil, fmt.Errorf("html: compile %s: %w", formTemplate, err)
	}
	r.template = tmpl
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the MIME type of Render output.
func (r *Renderer) ContentType() string {
	return contentType
}

// Render produces the HTML fragment for form. Values and errors in opts are
// keyed by field path; label fields expect string lists.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	form = cloneForm(form)
	render.LocalizeForm(&form, opts)
	if err := r.widgets.Decorate(&form); err != nil {
		return nil, fmt.Errorf("html: decorate: %w", err)
	}

	prefill := form.Fields.Defaults()
	for key, value := range opts.Values {
		prefill[key] = value
	}
	doc := formstate.New(prefill, opts.Errors)

	fields := make([]pongo2.Context, 0, len(form.Fields))
	for _, field := range form.Fields.Editable() {
		fields = append(fields, fieldContext(form, field, doc))
	}

	icon := ""
	if r.icons != nil {
		icon, _ = r.icons(form.Kind)
	}

	data := pongo2.Context{
		"form": pongo2.Context{
			"kind":          form.Kind,
			"category":      form.Category,
			"title":         form.Title,
			"category_name": form.Metadata["category.name"],
		},
		"icon":         icon,
		"action":       r.action,
		"fields":       fields,
		"hidden":       hiddenContext(render.FormHiddenFields(form.Kind, form.Category, opts.Hidden)),
		"form_errors":  opts.FormErrors,
		"kv_pattern":   labelfield.KVPattern,
		"submit_label": render.Translate(opts, "newE.submit", defaultSubmit),
	}

	r.mu.Lock()
	out, err := r.template.ExecuteBytes(data)
	r.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("html: execute %s: %w", formTemplate, err)
	}
	return out, nil
}

func fieldContext(form model.Form, field model.Field, doc *formstate.Document) pongo2.Context {
	path := field.Path()
	errs := doc.ErrorsFor(path)
	ctx := pongo2.Context{
		"id":          fieldID(form, field),
		"name":        field.Name,
		"path":        path,
		"label":       field.DisplayLabel(),
		"widget":      widgets.WidgetOf(field),
		"placeholder": field.Metadata["placeholder"],
		"kv":          field.IsKV,
	}

	switch field.Type {
	case model.FieldTypeLabel:
		errorText := ""
		if len(errs) > 0 {
			errorText = errs[0]
		}
		editor := labelfield.New(doc, labelfield.Options{
			Path:       field.Name,
			IsKV:       field.IsKV,
			ErrorText:  errorText,
			Label:      field.DisplayLabel(),
			HelperText: field.HelperText,
		})
		view := editor.View()
		chips := make([]string, len(view.Chips))
		for i, chip := range view.Chips {
			chips[i] = chip.Label
		}
		ctx["chips"] = chips
		ctx["helper"] = view.HelperText
		ctx["invalid"] = view.Error
		return ctx
	case model.FieldTypeSelect, model.FieldTypeAutocomplete:
		selected := map[string]bool{}
		if field.Type == model.FieldTypeSelect {
			value, _ := doc.Get(field.Name)
			selected[fmt.Sprint(value)] = value != nil
		} else {
			for _, token := range doc.Tokens(field.Name) {
				selected[token] = true
			}
		}
		options := make([]pongo2.Context, 0, len(field.Items))
		for _, item := range field.Items {
			if item == "" && field.Type == model.FieldTypeAutocomplete {
				continue
			}
			label := item
			if label == "" {
				label = emptyOption
			}
			options = append(options, pongo2.Context{"value": item, "label": label, "selected": selected[item]})
		}
		ctx["options"] = options
	case model.FieldTypeNumber:
		if min, ok := field.InputProps["min"]; ok {
			ctx["min"] = fmt.Sprint(min)
		}
		fallthrough
	default:
		if value, ok := doc.Get(field.Name); ok && value != nil {
			ctx["value"] = fmt.Sprint(value)
		}
	}

	ctx["invalid"] = len(errs) > 0
	if len(errs) > 0 {
		ctx["helper"] = strings.Join(errs, " ")
	} else {
		ctx["helper"] = field.HelperText
	}
	return ctx
}

func fieldID(form model.Form, field model.Field) string {
	parts := []string{"chaosform", strings.ToLower(form.Kind)}
	if form.Category != "" {
		parts = append(parts, form.Category)
	}
	parts = append(parts, strings.ReplaceAll(field.Path(), ".", "-"))
	return strings.Join(parts, "-")
}

func hiddenContext(fields []render.HiddenField) []pongo2.Context {
	out := make([]pongo2.Context, 0, len(fields))
	for _, field := range fields {
		out = append(out, pongo2.Context{"name": field.Name, "value": field.Value})
	}
	return out
}

func cloneForm(form model.Form) model.Form {
	out := form
	out.Fields = form.Fields.Clone()
	if form.Metadata != nil {
		out.Metadata = make(map[string]string, len(form.Metadata))
		for k, v := range form.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
