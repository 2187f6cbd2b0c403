package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/bizhub-api/internal/usecases/authenticating"
	"github.com/vfg2006/bizhub-api/pkg/envelope"
)

type contextKey string

const (
	ContextKeyUser contextKey = "user"
)

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/login" || r.URL.Path == "/healthcheck" || r.URL.Path == "/v1/register" {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Bearer token is required")
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				envelope.WriteErrorMessage(w, envelope.CodeUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
