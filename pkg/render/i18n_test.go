package render_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/render"
)

type stubTranslator map[string]string

func (t stubTranslator) Translate(_ string, key string, _ ...any) (string, error) {
	if msg, ok := t[key]; ok {
		return msg, nil
	}
	return "", errors.New("missing translation")
}

func TestLocalizeTarget_UsesNameKey(t *testing.T) {
	target := model.Target{Name: "Network", NameKey: "newE.target.network.title"}
	render.LocalizeTarget(&target, render.RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{"newE.target.network.title": "Red"},
	})
	if target.Name != "Red" {
		t.Fatalf("expected translated name, got %q", target.Name)
	}
}

func TestLocalizeTarget_FallsBackToEnglish(t *testing.T) {
	target := model.Target{Name: "Clock Skew", NameKey: "newE.target.time.title"}
	render.LocalizeTarget(&target, render.RenderOptions{Locale: "es"})
	if target.Name != "Clock Skew" {
		t.Fatalf("expected fallback, got %q", target.Name)
	}
}

func TestLocalizeForm_FieldsAndCategory(t *testing.T) {
	form := model.Form{
		Title:    "Network",
		TitleKey: "newE.target.network.title",
		Metadata: map[string]string{
			"category.name":    "Loss",
			"category.nameKey": "newE.network.loss",
		},
		Fields: model.Spec{
			{
				Name:       "loss",
				Label:      "Loss",
				HelperText: "The percentage of packet loss",
				Metadata: map[string]string{
					"labelKey":    "fields.loss",
					"helpTextKey": "fields.loss.help",
				},
			},
			{Name: "correlation", Label: "Correlation"},
		},
	}

	var missing []string
	render.LocalizeForm(&form, render.RenderOptions{
		Locale:     "es",
		Translator: stubTranslator{"newE.target.network.title": "Red", "fields.loss": "Pérdida", "newE.network.loss": "Pérdida de paquetes"},
		OnMissing: func(_ string, key string, params []any, _ error) string {
			missing = append(missing, key)
			return params[0].(map[string]any)["default"].(string)
		},
	})

	if form.Title != "Red" || form.Fields[0].Label != "Pérdida" {
		t.Fatalf("unexpected localized form: %+v", form)
	}
	if form.Metadata["category.name"] != "Pérdida de paquetes" {
		t.Fatalf("category not localized: %q", form.Metadata["category.name"])
	}
	if form.Fields[0].HelperText != "The percentage of packet loss" {
		t.Fatalf("expected help text fallback, got %q", form.Fields[0].HelperText)
	}
	if len(missing) != 1 || missing[0] != "fields.loss.help" {
		t.Fatalf("unexpected missing keys: %v", missing)
	}
}

func TestMapTranslator_BaseLanguageFallback(t *testing.T) {
	tr := render.MapTranslator{
		"es": {"greeting": "hola %s"},
	}
	got, err := tr.Translate("es-MX", "greeting", "mundo")
	if err != nil || got != "hola mundo" {
		t.Fatalf("Translate = %q, %v", got, err)
	}
	if _, err := tr.Translate("fr", "greeting"); err == nil {
		t.Fatalf("expected missing translation error")
	}
}

func TestTranslate_Fallback(t *testing.T) {
	opts := render.RenderOptions{Locale: "es", Translator: stubTranslator{"newE.submit": "Enviar"}}
	if got := render.Translate(opts, "newE.submit", "Submit"); got != "Enviar" {
		t.Fatalf("Translate = %q", got)
	}
	if got := render.Translate(opts, "newE.cancel", "Cancel"); got != "Cancel" {
		t.Fatalf("Translate fallback = %q", got)
	}
	if got := render.Translate(render.RenderOptions{}, "", "Plain"); got != "Plain" {
		t.Fatalf("Translate empty key = %q", got)
	}
}
