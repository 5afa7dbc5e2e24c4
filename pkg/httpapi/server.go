package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-chaosform/pkg/experiment"
	"github.com/goliatone/go-chaosform/pkg/model"
	"github.com/goliatone/go-chaosform/pkg/render"
	"github.com/goliatone/go-chaosform/pkg/submission"
	"github.com/goliatone/go-chaosform/pkg/validation"
)

const maxBodyBytes = 1 << 20

// Option customises the handler returned by NewHandler.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTranslator localizes target and field names. locale is used when a
// request does not pass ?locale=.
func WithTranslator(locale string, translator render.Translator) Option {
	return func(s *Server) {
		s.locale = locale
		s.translator = translator
	}
}

// WithMetricsRegisterer registers the request counters on reg and serves it
// from /metrics.
func WithMetricsRegisterer(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.metricsRegistry = reg
		}
	}
}

// WithFormRenderer enables GET /kinds/{kind}/form using renderer.
func WithFormRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		s.forms = renderer
	}
}

// Server serves the experiment registry over HTTP.
type Server struct {
	registry        *experiment.Registry
	logger          *slog.Logger
	locale          string
	translator      render.Translator
	forms           render.Renderer
	metricsRegistry *prometheus.Registry
	requests        *prometheus.CounterVec
	validations     *prometheus.CounterVec
}

// NewHandler creates the HTTP handler for reg. A nil registry selects
// experiment.Default().
func NewHandler(reg *experiment.Registry, options ...Option) http.Handler {
	return NewServer(reg, options...).Routes()
}

// NewServer builds a Server without mounting routes.
func NewServer(reg *experiment.Registry, options ...Option) *Server {
	if reg == nil {
		reg = experiment.Default()
	}
	s := &Server{
		registry:        reg,
		logger:          slog.Default(),
		metricsRegistry: prometheus.NewRegistry(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaosform_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
	s.validations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chaosform_validations_total",
			Help: "Total number of experiment validations by kind, category and result",
		},
		[]string{"kind", "category", "result"},
	)
	s.metricsRegistry.MustRegister(s.requests, s.validations)
	return s
}

// Routes mounts every endpoint on a chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.countRequests)

	r.Get("/kinds", s.ListKinds)
	r.Route("/kinds/{kind}", func(r chi.Router) {
		r.Get("/", s.GetKind)
		r.Get("/form", s.GetForm)
		r.Get("/initial", s.GetInitialValues)
		r.Post("/validate", s.Validate)
	})
	r.Get("/icons/{file}", s.GetIcon)
	r.Get("/openapi.json", s.GetOpenAPI)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metricsRegistry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// CategorySummary is the listing view of a category.
type CategorySummary struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// KindSummary is one entry of GET /kinds.
type KindSummary struct {
	Kind       string            `json:"kind"`
	Name       string            `json:"name"`
	Icon       string            `json:"icon,omitempty"`
	Categories []CategorySummary `json:"categories"`
}

// ValidationResponse is the body of POST /kinds/{kind}/validate.
type ValidationResponse struct {
	Kind       string              `json:"kind"`
	Category   string              `json:"category,omitempty"`
	Valid      bool                `json:"valid"`
	Issues     []validation.Issue  `json:"issues,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	FormErrors []string            `json:"formErrors,omitempty"`
}

// ListKinds handles GET /kinds.
func (s *Server) ListKinds(w http.ResponseWriter, r *http.Request) {
	opts := s.renderOptions(r)
	kinds := s.registry.Kinds()
	out := make([]KindSummary, 0, len(kinds))
	for _, kind := range kinds {
		target, ok := s.registry.Lookup(kind)
		if !ok {
			continue
		}
		render.LocalizeTarget(&target, opts)
		out = append(out, summarize(target))
	}
	s.writeJSON(w, http.StatusOK, out)
}

// GetKind handles GET /kinds/{kind}.
func (s *Server) GetKind(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}
	target, _ := s.registry.Lookup(kind)
	render.LocalizeTarget(&target, s.renderOptions(r))
	s.writeJSON(w, http.StatusOK, target)
}

// GetForm handles GET /kinds/{kind}/form?category=.
func (s *Server) GetForm(w http.ResponseWriter, r *http.Request) {
	if s.forms == nil {
		http.Error(w, "Form rendering is not enabled", http.StatusNotFound)
		return
	}
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}
	form, ok := s.resolveForm(w, kind, r.URL.Query().Get("category"))
	if !ok {
		return
	}
	opts := s.renderOptions(r)
	initial, err := s.registry.InitialValues(kind, form.Category)
	if err == nil {
		opts.Values = initial
	}
	body, err := s.forms.Render(r.Context(), form, opts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		http.Error(w, "Render error", http.StatusInternalServerError)
		s.logger.Error("form render failed", "kind", kind, "category", form.Category, "error", err)
		return
	}
	w.Header().Set("Content-Type", s.forms.ContentType())
	if _, err := w.Write(body); err != nil {
		s.logger.Error("form response write failed", "error", err)
	}
}

// GetInitialValues handles GET /kinds/{kind}/initial?category=.
func (s *Server) GetInitialValues(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}
	form, ok := s.resolveForm(w, kind, r.URL.Query().Get("category"))
	if !ok {
		return
	}
	values := form.Fields.Defaults()
	s.writeJSON(w, http.StatusOK, submission.New(form, values))
}

// Validate handles POST /kinds/{kind}/validate?category=. The body is a
// submission request in JSON, YAML or msgpack depending on Content-Type.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("validate: read body", "error", err)
		return
	}
	format := submission.FormatFromContentType(r.Header.Get("Content-Type"))
	req, err := submission.DecodeFor(string(kind), format, data)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("validate: decode body", "kind", kind, "format", format, "error", err)
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category == "" {
		category = req.CategoryOf()
	}
	form, ok := s.resolveForm(w, kind, category)
	if !ok {
		return
	}

	result := s.registry.Validate(kind, form.Category, req.Spec)
	mapping := render.MapErrorPayload(form, result.Messages())
	s.validations.WithLabelValues(string(kind), categoryLabel(form.Category), resultLabel(result)).Inc()

	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	s.writeJSON(w, status, ValidationResponse{
		Kind:       string(kind),
		Category:   form.Category,
		Valid:      result.Valid,
		Issues:     result.Issues,
		Errors:     mapping.Fields,
		FormErrors: mapping.Form,
	})
}

// GetIcon handles GET /icons/{kind}.svg.
func (s *Server) GetIcon(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSuffix(chi.URLParam(r, "file"), ".svg")
	kind, err := experiment.ParseKind(name)
	if err != nil {
		http.Error(w, "Unknown icon", http.StatusNotFound)
		return
	}
	markup, ok := s.registry.Icon(kind)
	if !ok {
		http.Error(w, "Unknown icon", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.WriteString(w, markup); err != nil {
		s.logger.Error("icon response write failed", "error", err)
	}
}

// GetOpenAPI handles GET /openapi.json.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	doc := s.registry.OpenAPIDocument()
	data, err := doc.MarshalJSON()
	if err != nil {
		http.Error(w, "Failed to build spec", http.StatusInternalServerError)
		s.logger.Error("openapi marshal failed", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("openapi response write failed", "error", err)
	}
}

func (s *Server) kindParam(w http.ResponseWriter, r *http.Request) (experiment.Kind, bool) {
	kind, err := experiment.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	if _, ok := s.registry.Lookup(kind); !ok {
		http.Error(w, "experiment: unknown kind", http.StatusNotFound)
		return "", false
	}
	return kind, true
}

func (s *Server) resolveForm(w http.ResponseWriter, kind experiment.Kind, category string) (model.Form, bool) {
	form, err := s.registry.Form(kind, category)
	switch {
	case err == nil:
		return form, true
	case errors.Is(err, experiment.ErrUnknownCategory):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, experiment.ErrCategoryRequired):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
		s.logger.Error("resolve form failed", "kind", kind, "category", category, "error", err)
	}
	return model.Form{}, false
}

func (s *Server) renderOptions(r *http.Request) render.RenderOptions {
	locale := strings.TrimSpace(r.URL.Query().Get("locale"))
	if locale == "" {
		locale = s.locale
	}
	return render.RenderOptions{
		Locale:     locale,
		Translator: s.translator,
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func summarize(target model.Target) KindSummary {
	summary := KindSummary{
		Kind:       target.Kind,
		Name:       target.Name,
		Icon:       target.Icon,
		Categories: make([]CategorySummary, 0, len(target.Categories)),
	}
	for _, category := range target.Categories {
		summary.Categories = append(summary.Categories, CategorySummary{Key: category.Key, Name: category.Name})
	}
	return summary
}

func categoryLabel(category string) string {
	if category == "" {
		return experiment.DefaultCategory
	}
	return category
}

func resultLabel(result validation.Result) string {
	if result.Valid {
		return "valid"
	}
	return "invalid"
}
