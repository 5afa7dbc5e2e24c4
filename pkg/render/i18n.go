package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-chaosform/pkg/model"
)

const (
	fieldLabelKeyHint    = "labelKey"
	fieldHelpTextKeyHint = "helpTextKey"
	categoryNameKeyHint  = "category.nameKey"
)

// ErrMissingTranslator is passed to MissingTranslationHandler when no
// translator was configured.
var ErrMissingTranslator = errors.New("render: translator not configured")

// Translator resolves message keys for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// MissingTranslationHandler decides what is shown when key cannot be
// resolved. params carries {"default": fallback} as its first element.
type MissingTranslationHandler func(locale, key string, params []any, err error) string

// MapTranslator is an in-memory Translator keyed by locale then message key.
// Messages may contain fmt verbs consumed by args.
type MapTranslator map[string]map[string]string

// Translate implements Translator. Region-qualified locales ("es-MX") fall
// back to their base language.
func (m MapTranslator) Translate(locale, key string, args ...any) (string, error) {
	for _, candidate := range localeChain(locale) {
		messages, ok := m[candidate]
		if !ok {
			continue
		}
		if msg, ok := messages[key]; ok {
			if len(args) > 0 {
				return fmt.Sprintf(msg, args...), nil
			}
			return msg, nil
		}
	}
	return "", fmt.Errorf("render: no translation for %q in %q", key, locale)
}

func localeChain(locale string) []string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return nil
	}
	chain := []string{locale}
	if idx := strings.IndexAny(locale, "-_"); idx > 0 {
		chain = append(chain, locale[:idx])
	}
	return chain
}

// LocalizeTarget replaces the target's English fallback name with the
// translation of its NameKey.
func LocalizeTarget(target *model.Target, opts RenderOptions) {
	if target == nil {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	target.Name = translate(opts.Locale, target.NameKey, target.Name, opts.Translator, onMissing)
}

// LocalizeForm mutates form in place, translating its title, the category
// name and any field carrying labelKey/helpTextKey metadata.
//
// Missing translations keep the English text unless opts.OnMissing says
// otherwise.
func LocalizeForm(form *model.Form, opts RenderOptions) {
	if form == nil {
		return
	}
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	form.Title = translate(opts.Locale, form.TitleKey, form.Title, opts.Translator, onMissing)
	if key := strings.TrimSpace(form.Metadata[categoryNameKeyHint]); key != "" {
		form.Metadata["category.name"] = translate(opts.Locale, key, form.Metadata["category.name"], opts.Translator, onMissing)
	}

	for i := range form.Fields {
		field := &form.Fields[i]
		if key := strings.TrimSpace(field.Metadata[fieldLabelKeyHint]); key != "" {
			field.Label = translate(opts.Locale, key, field.Label, opts.Translator, onMissing)
		}
		if key := strings.TrimSpace(field.Metadata[fieldHelpTextKeyHint]); key != "" {
			field.HelperText = translate(opts.Locale, key, field.HelperText, opts.Translator, onMissing)
		}
	}
}

// Translate resolves key through opts, returning fallback when no
// translation is available.
func Translate(opts RenderOptions, key, fallback string) string {
	onMissing := opts.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	return translate(opts.Locale, key, fallback, opts.Translator, onMissing)
}

func translate(locale, key, fallback string, t Translator, onMissing MissingTranslationHandler) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	if t == nil {
		return onMissing(locale, key, []any{map[string]any{"default": fallback}}, ErrMissingTranslator)
	}

	result, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	return onMissing(locale, key, []any{map[string]any{"default": fallback}}, err)
}

func missingTranslationDefault(_ string, key string, params []any, _ error) string {
	for _, param := range params {
		if values, ok := param.(map[string]any); ok {
			if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
				return fallback
			}
		}
	}
	return key
}
