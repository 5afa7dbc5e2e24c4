package chaosform

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateHTML(t *testing.T) {
	out, err := GenerateHTML(context.Background(), "networkchaos", "loss", RenderOptions{
		Values: map[string]any{"external_targets": []string{"example.com"}},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(out)
	for _, want := range []string{`data-kind="NetworkChaos"`, `data-category="loss"`, `value="example.com"`, "<svg"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestGenerateHTML_UnknownKind(t *testing.T) {
	if _, err := GenerateHTML(context.Background(), "DNSChaos", "", RenderOptions{}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestValidate(t *testing.T) {
	result, err := Validate("TimeChaos", "", map[string]any{"time_offset": "-5m"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid result, got %+v", result.Issues)
	}

	result, err = Validate("IoChaos", "fault", map[string]any{"action": "fault", "errno": -1})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected errno -1 to fail")
	}
}

func TestNewHandler_ServesForms(t *testing.T) {
	handler, err := NewHandler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/kinds/KernelChaos/form", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("form.tpl missing: %v", err)
	}
}
