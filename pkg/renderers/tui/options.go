package tui

import (
	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/submission"
	"github.com/goliatone/go-chaosform/pkg/validation"
)

// Theme captures optional prefixes the renderer applies when printing
// messages through the driver.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// SubmitTransformer mutates collected values before they are assembled.
type SubmitTransformer func(map[string]any) (map[string]any, error)

// Validator checks the flat values collected for form.
type Validator func(form model.Form, values map[string]any) validation.Result

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the submission encoding.
func WithOutputFormat(format submission.Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = format
		}
	}
}

// WithSubmitTransformer allows callers to mutate collected values prior to
// serialization.
func WithSubmitTransformer(fn SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = fn
	}
}

// WithValidator re-prompts the fields reported by fn until the values pass
// or maxRounds correction rounds have been spent.
func WithValidator(fn Validator, maxRounds int) Option {
	return func(r *Renderer) {
		r.validator = fn
		if maxRounds > 0 {
			r.maxRounds = maxRounds
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
