package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/spiritsvault/spirits-vault-backend/internal/models"
	"github.com/spiritsvault/spirits-vault-backend/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// TokenVerifier validates a token and returns the user id it encodes.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserResolver loads the user a verified token points at.
type UserResolver interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth extracts the Bearer token, verifies it and resolves it to a
// persisted user, which is attached to the request context. All failures are
// a 401; the reason (missing vs expired vs malformed vs deleted user) is not
// distinguished in the response.
func RequireAuth(tokens TokenVerifier, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" || token == authHeader {
				utils.WriteError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				utils.WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				// Covers users deleted after the token was issued
				utils.WriteError(w, http.StatusUnauthorized, "Authentication failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying the authenticated user.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user attached by RequireAuth.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
