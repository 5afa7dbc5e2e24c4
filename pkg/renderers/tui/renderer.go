package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-chaosform/pkg/formstate"
	"github.com/goliatone/go-chaosform/pkg/labelfield"
	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/submission"
)

const (
	defaultMaxRounds = 3
	emptyOption      = "(none)"
	backspaceCommand = "<"
	clearCommand     = "!clear"
)

// Renderer implements render.Renderer for terminal-driven sessions. It walks
// the editable fields of a form, prompts for each, and returns the encoded
// submission request.
type Renderer struct {
	driver            PromptDriver
	format            submission.Format
	submitTransformer SubmitTransformer
	validator         Validator
	maxRounds         int
	theme             Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:    NewSurveyDriver(),
		format:    submission.FormatJSON,
		maxRounds: defaultMaxRounds,
		theme:     Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return r.format.ContentType()
}

// Render prompts for every editable field of form. opts.Values overrides the
// field defaults; opts.Errors is shown next to the matching prompts.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	values, err := r.Collect(ctx, form, opts)
	if err != nil {
		return nil, err
	}
	if r.submitTransformer != nil {
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return submission.Encode(r.format, submission.New(form, values))
}

// Collect runs the prompt session and returns the flat values keyed by field
// name.
func (r *Renderer) Collect(ctx context.Context, form model.Form, opts render.RenderOptions) (map[string]any, error) {
	prefill := form.Fields.Defaults()
	for key, value := range opts.Values {
		prefill[key] = value
	}
	doc := formstate.New(prefill, opts.Errors)

	if title := strings.TrimSpace(form.Title); title != "" {
		heading := title
		if name := form.Metadata["category.name"]; name != "" {
			heading += " / " + name
		}
		r.info(ctx, heading)
	}
	for _, message := range opts.FormErrors {
		r.fail(ctx, message)
	}

	pending := form.Fields.Editable()
	for round := 0; ; round++ {
		for _, field := range pending {
			if err := r.promptField(ctx, field, doc); err != nil {
				return nil, err
			}
		}
		if r.validator == nil {
			return doc.Values(), nil
		}

		result := r.validator(form, doc.Values())
		if result.Valid {
			return doc.Values(), nil
		}
		if round+1 >= r.maxRounds {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, result.Issues[0].Message)
		}

		pending = nil
		flagged := result.Messages()
		for _, field := range form.Fields.Editable() {
			messages, ok := flagged[field.Path()]
			if !ok {
				continue
			}
			doc.SetErrors(field.Path(), messages...)
			pending = append(pending, field)
		}
		if len(pending) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalid, result.Issues[0].Message)
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, field model.Field, doc *formstate.Document) error {
	if field.Type != model.FieldTypeLabel {
		for _, message := range doc.ErrorsFor(field.Path()) {
			r.fail(ctx, message)
		}
	}
	var err error
	switch field.Type {
	case model.FieldTypeNumber:
		err = r.promptNumber(ctx, field, doc)
	case model.FieldTypeSelect:
		err = r.promptSelect(ctx, field, doc)
	case model.FieldTypeAutocomplete:
		err = r.promptMulti(ctx, field, doc)
	case model.FieldTypeLabel:
		err = r.promptLabel(ctx, field, doc)
	default:
		err = r.promptText(ctx, field, doc)
	}
	if err == nil {
		doc.SetErrors(field.Path())
	}
	return err
}

func (r *Renderer) promptText(ctx context.Context, field model.Field, doc *formstate.Document) error {
	response, err := r.driver.Input(ctx, InputConfig{
		Message: field.DisplayLabel(),
		Default: stringValue(doc, field.Name),
		Help:    field.HelperText,
	})
	if err != nil {
		return err
	}
	return doc.Set(field.Name, strings.TrimSpace(response))
}

func (r *Renderer) promptNumber(ctx context.Context, field model.Field, doc *formstate.Document) error {
	current, _ := doc.Get(field.Name)
	defaultStr := ""
	if current != nil {
		defaultStr = fmt.Sprint(current)
	}
	min, hasMin := minOf(field)

	for {
		input, err := r.driver.Input(ctx, InputConfig{
			Message: field.DisplayLabel(),
			Default: defaultStr,
			Help:    field.HelperText,
		})
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return doc.Set(field.Name, nil)
		}
		parsed, err := parseNumber(input)
		if err != nil {
			r.fail(ctx, fmt.Sprintf("%s must be a number", field.DisplayLabel()))
			continue
		}
		if hasMin && parsed < min {
			r.fail(ctx, fmt.Sprintf("%s must be greater than or equal to %s", field.DisplayLabel(), strconv.FormatFloat(min, 'f', -1, 64)))
			continue
		}
		if parsed == float64(int64(parsed)) {
			return doc.Set(field.Name, int(parsed))
		}
		return doc.Set(field.Name, parsed)
	}
}

func (r *Renderer) promptSelect(ctx context.Context, field model.Field, doc *formstate.Document) error {
	options := displayOptions(field.Items)
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: field.DisplayLabel(),
		Help:    field.HelperText,
		Options: options,
		Default: position(field.Items, stringValue(doc, field.Name)),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Items) {
		return fmt.Errorf("tui: invalid selection for %s", field.Name)
	}
	return doc.Set(field.Name, field.Items[idx])
}

func (r *Renderer) promptMulti(ctx context.Context, field model.Field, doc *formstate.Document) error {
	options := make([]string, 0, len(field.Items))
	for _, item := range field.Items {
		if item != "" {
			options = append(options, item)
		}
	}
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  field.DisplayLabel(),
		Help:     field.HelperText,
		Options:  options,
		Default:  -1,
		Checked:  positions(options, doc.Tokens(field.Name)),
		PageSize: 10,
	})
	if err != nil {
		return err
	}
	picked := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(options) {
			picked = append(picked, options[idx])
		}
	}
	doc.SetTokens(field.Name, picked)
	return nil
}

// promptLabel feeds each typed line through the label editor. A blank line
// finishes the field, "<" removes the last token and "!clear" empties it.
func (r *Renderer) promptLabel(ctx context.Context, field model.Field, doc *formstate.Document) error {
	errorText := ""
	if messages := doc.ErrorsFor(field.Path()); len(messages) > 0 {
		errorText = messages[0]
	}
	editor := labelfield.New(doc, labelfield.Options{
		Path:       field.Name,
		IsKV:       field.IsKV,
		ErrorText:  errorText,
		Label:      field.DisplayLabel(),
		HelperText: field.HelperText,
	})

	if editor.Error() != "" {
		r.fail(ctx, editor.Error())
	}
	for {
		view := editor.View()
		line, err := r.driver.Input(ctx, InputConfig{
			Message: labelMessage(view),
			Help:    editor.HelperText(),
		})
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "":
			return nil
		case backspaceCommand:
			editor.Backspace()
		case clearCommand:
			editor.Clear()
		default:
			r.commitLine(ctx, editor, line)
		}
	}
}

// commitLine commits every word of line in turn. A rejected word is
// reported before the next one is typed, since typing dismisses the error.
func (r *Renderer) commitLine(ctx context.Context, editor *labelfield.Editor, line string) {
	for _, word := range strings.Fields(line) {
		editor.Type(word)
		editor.Commit()
		if msg := editor.Error(); msg != "" {
			r.fail(ctx, msg)
		}
	}
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func labelMessage(view labelfield.View) string {
	if len(view.Chips) == 0 {
		return view.Label
	}
	chips := make([]string, len(view.Chips))
	for i, chip := range view.Chips {
		chips[i] = chip.Label
	}
	return fmt.Sprintf("%s [%s]", view.Label, strings.Join(chips, ", "))
}

func displayOptions(items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		if item == "" {
			out[i] = emptyOption
			continue
		}
		out[i] = item
	}
	return out
}

func stringValue(doc *formstate.Document, path string) string {
	value, ok := doc.Get(path)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

func minOf(field model.Field) (float64, bool) {
	switch v := field.InputProps["min"].(type) {
	case int:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func parseNumber(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

func position(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

// positions returns the indexes of options present in values, in option
// order.
func positions(options, values []string) []int {
	var out []int
	for i, option := range options {
		if position(values, option) >= 0 {
			out = append(out, i)
		}
	}
	return out
}
