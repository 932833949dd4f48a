package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/Dibek1910/Travel-Buddy/internal/domain"
)

// identityKey is the context key under which the verified caller identity is
// stored. Unexported struct type prevents collisions with other packages.
type identityKey struct{}

// IdentityFrom extracts the verified caller identity placed in ctx by the
// auth middleware. The second return value is false on unauthenticated routes.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domain.Identity)
	return id, ok
}

// WithIdentity returns a copy of ctx carrying the given identity.
// Exported for handler tests, which bypass the middleware.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// authClaims mirrors the payload signed by the auth service.
type authClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// NewAuthHandler returns a middleware that verifies the Bearer token on each
// request and attaches the resulting domain.Identity to the request context.
// Requests without a valid token are rejected with 401; downstream handlers
// can trust the identity without further checks.
func NewAuthHandler(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			var claims authClaims
			parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return key, nil
			})
			if err != nil || !parsed.Valid {
				unauthorized(w, "invalid or expired token")
				return
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			identity := domain.Identity{ID: userID, Email: claims.Email}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
		"error":   map[string]string{"code": "unauthorized"},
	})
}
