package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/goliatone/go-chaosform/pkg/experiment"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/renderers/html"
	"github.com/goliatone/go-chaosform/pkg/submission"
)

func newTestHandler(t *testing.T, options ...Option) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(experiment.NewRegistry(), append([]Option{WithLogger(logger)}, options...)...)
}

func serve(handler http.Handler, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestListKinds(t *testing.T) {
	rr := serve(newTestHandler(t), http.MethodGet, "/kinds", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var kinds []KindSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &kinds))
	require.Len(t, kinds, 6)
	assert.Equal(t, "PodChaos", kinds[0].Kind)

	network := kinds[1]
	assert.Equal(t, "NetworkChaos", network.Kind)
	keys := make([]string, 0, len(network.Categories))
	for _, category := range network.Categories {
		keys = append(keys, category.Key)
	}
	assert.Equal(t, []string{"partition", "loss", "delay", "duplicate", "corrupt", "bandwidth"}, keys)
	assert.Empty(t, kinds[5].Categories)
}

func TestListKinds_Localized(t *testing.T) {
	translator := render.MapTranslator{
		"es": {"newE.target.network.title": "Ataque de red"},
	}
	handler := newTestHandler(t, WithTranslator("en", translator))

	rr := serve(handler, http.MethodGet, "/kinds?locale=es-MX", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var kinds []KindSummary
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &kinds))
	assert.Equal(t, "Ataque de red", kinds[1].Name)
	assert.NotEmpty(t, kinds[0].Name)
}

func TestGetKind(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/kinds/stresschaos", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"kind":"StressChaos"`)
	assert.Contains(t, rr.Body.String(), `"stressors"`)

	rr = serve(handler, http.MethodGet, "/kinds/DNSChaos", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetInitialValues(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/kinds/IoChaos/initial?category=latency", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var req submission.Request
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &req))
	assert.Equal(t, "IoChaos", req.Kind)
	assert.Equal(t, "latency", req.Category)
	assert.Equal(t, "latency", req.Spec["action"])
	assert.EqualValues(t, 100, req.Spec["percent"])

	rr = serve(handler, http.MethodGet, "/kinds/IoChaos/initial", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(handler, http.MethodGet, "/kinds/IoChaos/initial?category=mistake", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestValidate_JSONMissingRequiredField(t *testing.T) {
	body := `{"spec": {"action": "loss", "loss": {"loss": ""}, "direction": "to"}}`
	rr := serve(newTestHandler(t), http.MethodPost, "/kinds/NetworkChaos/validate", strings.NewReader(body), "application/json")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "loss", resp.Category)
	assert.Contains(t, resp.Errors, "loss.loss")
	assert.Empty(t, resp.FormErrors)
}

func TestValidate_YAMLWithQueryCategory(t *testing.T) {
	body := "kind: PodChaos\nspec:\n  container_name: nginx\n"
	rr := serve(newTestHandler(t), http.MethodPost, "/kinds/PodChaos/validate?category=container-kill", strings.NewReader(body), "application/x-yaml")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "container-kill", resp.Category)
}

func TestValidate_Msgpack(t *testing.T) {
	payload, err := msgpack.Marshal(submission.Request{
		Kind:     "PodChaos",
		Category: "container-kill",
		Spec:     map[string]any{"action": "container-kill"},
	})
	require.NoError(t, err)

	rr := serve(newTestHandler(t), http.MethodPost, "/kinds/PodChaos/validate", strings.NewReader(string(payload)), "application/msgpack")
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	var resp ValidationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []string{"The container name is required"}, resp.Errors["container_name"])
}

func TestValidate_RejectsKindMismatch(t *testing.T) {
	body := `{"kind": "TimeChaos", "spec": {}}`
	rr := serve(newTestHandler(t), http.MethodPost, "/kinds/PodChaos/validate", strings.NewReader(body), "application/json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestValidate_FlatKindWithoutRule(t *testing.T) {
	rr := serve(newTestHandler(t), http.MethodPost, "/kinds/StressChaos/validate", strings.NewReader(`{"spec": {}}`), "application/json")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"valid":true`)
}

func TestGetIcon(t *testing.T) {
	handler := newTestHandler(t)

	rr := serve(handler, http.MethodGet, "/icons/NetworkChaos.svg", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<svg")
	assert.NotContains(t, rr.Body.String(), "<script")

	rr = serve(handler, http.MethodGet, "/icons/unknown.svg", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetOpenAPI(t *testing.T) {
	rr := serve(newTestHandler(t), http.MethodGet, "/openapi.json", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &doc))
	assert.Equal(t, experiment.OpenAPIVersion, doc["openapi"])
	components, ok := doc["components"].(map[string]any)
	require.True(t, ok)
	schemas, ok := components["schemas"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, schemas, experiment.SchemaName(experiment.KindNetworkChaos, "loss"))
}

func TestGetForm(t *testing.T) {
	handler := newTestHandler(t)
	rr := serve(handler, http.MethodGet, "/kinds/NetworkChaos/form?category=delay", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	renderer, err := html.New()
	require.NoError(t, err)
	handler = newTestHandler(t, WithFormRenderer(renderer))

	rr = serve(handler, http.MethodGet, "/kinds/NetworkChaos/form?category=delay", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), `data-kind="NetworkChaos"`)
	assert.Contains(t, rr.Body.String(), `data-category="delay"`)
}

func TestMetrics_CountsRequestsAndValidations(t *testing.T) {
	reg := prometheus.NewRegistry()
	handler := newTestHandler(t, WithMetricsRegisterer(reg))

	serve(handler, http.MethodGet, "/kinds", nil, "")
	serve(handler, http.MethodPost, "/kinds/TimeChaos/validate", strings.NewReader(`{"spec": {}}`), "application/json")

	rr := serve(handler, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `chaosform_http_requests_total{code="200",route="/kinds"} 1`)
	assert.Contains(t, body, `chaosform_validations_total{category="default",kind="TimeChaos",result="invalid"} 1`)
}
