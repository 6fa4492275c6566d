package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/globemarks/api/internal/metrics"
)

// NewMetricsHandler returns a middleware that records one counter increment
// and one histogram observation per request. The route label uses chi's
// route pattern (e.g. "/api/locations/{id}") rather than the raw path, so
// per-ID URLs do not explode label cardinality.
func NewMetricsHandler(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}

			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
			m.RequestSeconds.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
