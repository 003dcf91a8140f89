package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sulthanallaudeen/priya-task/internal/auth"
	"github.com/sulthanallaudeen/priya-task/internal/database/models"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	tokenKey     contextKey = "session_token"
)

// Auth resolves the bearer token to a principal and stores it in the
// request context. Missing, unknown and expired tokens are 401; a valid
// token bound to a deactivated account is 403.
func Auth(sessions auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			principal, err := sessions.ResolveSession(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, auth.ErrSessionNotFound):
					writeError(w, http.StatusUnauthorized, "Invalid session token")
				case errors.Is(err, auth.ErrSessionExpired):
					writeError(w, http.StatusUnauthorized, "Session expired")
				case errors.Is(err, auth.ErrInactiveUser):
					writeError(w, http.StatusForbidden, "Your account is inactive")
				default:
					writeError(w, http.StatusInternalServerError, "Authentication failed")
				}
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, principalKey, principal)
			ctx = context.WithValue(ctx, tokenKey, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates admin-only routes. Must run after Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(GetPrincipal(r.Context())) {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal returns the authenticated user, or nil outside Auth.
func GetPrincipal(ctx context.Context) *models.User {
	if principal, ok := ctx.Value(principalKey).(*models.User); ok {
		return principal
	}
	return nil
}

// GetSessionToken returns the raw bearer token for the current request.
func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
