package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler builds the CORS layer from the configured origin allowlist.
// Origins are matched exactly, so each entry needs scheme and host with no
// trailing slash. The method and header lists cover everything the routes
// accept; anything else is left for the browser to reject.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
