package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/hszk-dev/monostack/internal/infrastructure/metrics"
)

func newTestRouter(logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(Metrics)

	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	return r
}

func TestRequestID_EchoesHeader(t *testing.T) {
	r := newTestRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected request ID abc-123, got %q", got)
	}
}

func TestLogger_LogsRoutePattern(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/42", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("failed to parse log line %q: %v", buf.String(), err)
	}
	if line["route"] != "/items/{id}" {
		t.Errorf("route = %v, want /items/{id}", line["route"])
	}
	if line["path"] != "/items/42" {
		t.Errorf("path = %v, want /items/42", line["path"])
	}
	if line["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want 200", line["status"])
	}
	if line["bytes"] != float64(2) {
		t.Errorf("bytes = %v, want 2", line["bytes"])
	}
}

func TestRecoverer_Returns500(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRouter(slog.New(slog.NewJSONHandler(&buf, nil)))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "internal_error") {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Error("expected panic to be logged")
	}
}

func TestMetrics_CountsByRoutePattern(t *testing.T) {
	r := newTestRouter(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "200")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/1", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/2", nil))

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("expected 2 requests counted, got %v", got)
	}
}

func TestMetrics_MountedNotFoundIsUnmatched(t *testing.T) {
	sub := chi.NewRouter()
	sub.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Mount("/", sub)

	unmatched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, metrics.RouteUnmatched, "404")
	wildcard := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/*", "404")
	matched := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "200")
	beforeUnmatched := testutil.ToFloat64(unmatched)
	beforeWildcard := testutil.ToFloat64(wildcard)
	beforeMatched := testutil.ToFloat64(matched)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/3", nil))

	if got := testutil.ToFloat64(unmatched) - beforeUnmatched; got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
	if got := testutil.ToFloat64(wildcard) - beforeWildcard; got != 0 {
		t.Errorf("expected no request labelled /*, got %v", got)
	}
	if got := testutil.ToFloat64(matched) - beforeMatched; got != 1 {
		t.Errorf("expected 1 request labelled /items/{id}, got %v", got)
	}
}
