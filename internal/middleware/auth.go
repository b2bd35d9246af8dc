package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hlstech/website/internal/auth"
	"github.com/hlstech/website/internal/model"
	"github.com/hlstech/website/internal/store"
)

type contextKey string

const contextKeyAdmin contextKey = "admin"

// tokenValidator validates a bearer token and returns its embedded claims.
type tokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// adminByIDer retrieves an administrator by ID, without the password hash.
type adminByIDer interface {
	GetByID(ctx context.Context, id string) (*model.Admin, error)
}

// Authenticate validates the Authorization bearer token, resolves it to a
// live administrator record and attaches that record to the request context.
//
// The lookup happens on every request: a deactivated or deleted admin is
// rejected on their next request even if the token itself is still valid.
func Authenticate(tokens tokenValidator, admins adminByIDer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "No authentication token, access denied")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					writeAuthError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				writeAuthError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			admin, err := admins.GetByID(r.Context(), claims.AdminID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					writeAuthError(w, http.StatusUnauthorized, "Admin not found")
					return
				}
				slog.Error("auth: admin lookup failed", "err", err, "admin_id", claims.AdminID)
				writeAuthError(w, http.StatusInternalServerError, "Authentication error")
				return
			}

			if !admin.Active {
				writeAuthError(w, http.StatusUnauthorized, "Account is deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyAdmin, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminFromContext returns the authenticated administrator attached by
// Authenticate, or nil on an unauthenticated request.
func AdminFromContext(ctx context.Context) *model.Admin {
	a, _ := ctx.Value(contextKeyAdmin).(*model.Admin)
	return a
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
