// Package middleware holds the HTTP middleware shared by every route: request
// logging, auth, CORS, metrics, and body-size limits.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewSlogLogger returns middleware that emits one slog line per request,
// carrying method, path, status, duration, and the request ID.
//
// It must sit below chimiddleware.RequestID in the chain, otherwise the
// request_id attribute comes out empty.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// The wrapped writer records the status code the downstream
			// handler sets; plain http.ResponseWriter never exposes it.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
