package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the resolved form.
type RenderOptions struct {
	// Values pre-populates controls keyed by field path ("loss.loss").
	// Label fields expect a []string.
	Values map[string]any
	// Errors surfaces server-side validation feedback keyed by field path,
	// usually the output of MapErrorPayload or validation.Result.Messages.
	Errors map[string][]string
	// FormErrors are messages that could not be tied to a field.
	FormErrors []string
	// Hidden carries extra name/value pairs emitted next to the visible
	// controls (kind, category, csrf tokens).
	Hidden map[string]string
	// Locale and Translator drive LocalizeForm. Both are optional.
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}
