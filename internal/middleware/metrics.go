package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Dibek1910/Travel-Buddy/internal/observability"
)

// NewMetricsHandler returns a middleware that records request count and
// latency into the Prometheus collectors. The path label uses the chi route
// pattern (e.g. /api/rides/{rideId}) rather than the raw URL, keeping label
// cardinality bounded.
func NewMetricsHandler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					path = pattern
				}
			}
			status := strconv.Itoa(ww.Status())

			observability.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
			observability.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}
