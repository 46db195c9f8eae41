// Package web serves the HTML page that shows the API health.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/hszk-dev/monostack/internal/api/middleware"
	"github.com/hszk-dev/monostack/pkg/client"
	"github.com/hszk-dev/monostack/pkg/contract"
)

// ErrRender is returned when the page data cannot be loaded.
var ErrRender = errors.New("render home page")

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// HealthAccessor fetches the API health. client.Accessor satisfies it.
type HealthAccessor interface {
	Call(ctx context.Context, in contract.Empty, opts ...client.CallOption) (*client.Response[contract.HealthResponse], error)
}

type homePage struct {
	Status string
	Uptime string
}

// Handler renders the home page.
type Handler struct {
	health HealthAccessor
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(health HealthAccessor, logger *slog.Logger) *Handler {
	return &Handler{health: health, logger: logger}
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")

	page, err := h.load(r.Context(), middleware.GetRequestID(r.Context()))
	if err != nil {
		h.logger.Error("failed to render home page",
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		h.render(w, http.StatusInternalServerError, "error.html", nil)
		return
	}

	h.render(w, http.StatusOK, "home.html", page)
}

func (h *Handler) load(ctx context.Context, requestID string) (homePage, error) {
	opts := []client.CallOption{client.NoStore()}
	if requestID != "" {
		opts = append(opts, client.Header(middleware.RequestIDHeader, requestID))
	}

	resp, err := h.health.Call(ctx, contract.Empty{}, opts...)
	if err != nil {
		return homePage{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	if !resp.OK {
		return homePage{}, fmt.Errorf("%w: health returned status %d", ErrRender, resp.StatusCode)
	}

	health, err := resp.JSON()
	if err != nil {
		return homePage{}, fmt.Errorf("%w: %w", ErrRender, err)
	}

	return homePage{
		Status: health.Status,
		Uptime: strconv.FormatFloat(health.Uptime, 'f', -1, 64),
	}, nil
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		h.logger.Error("failed to execute template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
