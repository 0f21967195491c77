// Package auth guards route groups behind the bearer tokens issued by the
// login endpoint.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/ryplify/ryptrack/internal/auth"
)

type key struct{}

var usernameKey = key{}

// RequireToken rejects requests without a valid Bearer token and stores the
// authenticated username in the request context.
func RequireToken(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "missing bearer token"})
				return
			}

			username, err := auth.VerifyToken(token, secret)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "invalid or expired token"})
				return
			}

			r = r.WithContext(context.WithValue(r.Context(), usernameKey, username))
			next.ServeHTTP(w, r)
		})
	}
}

// Username returns the authenticated username stored by RequireToken.
func Username(ctx context.Context) (string, error) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok {
		return "", errors.New("no authenticated user in context")
	}
	return username, nil
}
