package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hszk-dev/monostack/internal/infrastructure/metrics"
)

// Metrics records request count and latency labelled by chi route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := wrapResponseWriter(w)

		next.ServeHTTP(wrapped, r)

		route := routePattern(r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the matched chi pattern, so /users/42 and /users/43
// share a label. Only meaningful after the router has run; requests that
// matched no route share metrics.RouteUnmatched.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return metrics.RouteUnmatched
	}
	p := rctx.RoutePattern()
	// A mounted sub-router that matched nothing leaves only the mount wildcard.
	if p == "" || strings.HasSuffix(p, "/*") {
		return metrics.RouteUnmatched
	}
	return p
}
