package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/redmonkez12/user-auth-api/internal/httputil"
	"github.com/redmonkez12/user-auth-api/internal/logging"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "user_id"

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
	logger       *logging.Logger
}

func NewMiddleware(tokenService TokenService, logger *logging.Logger) *Middleware {
	return &Middleware{tokenService: tokenService, logger: logger}
}

// RequireAuth rejects requests without a valid session token and stores the
// token's user id in the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context(), m.logger)

		token, err := tokenFromRequest(r)
		if err != nil {
			respondAuthError(w, ErrNotAuthorized)
			return
		}

		claims, err := m.tokenService.Verify(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				logger.Debug("rejected expired token")
			} else {
				logger.Warn("rejected invalid token")
			}
			respondAuthError(w, ErrNotAuthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	return userID, ok && userID != ""
}

func respondAuthError(w http.ResponseWriter, e *Error) {
	httputil.RespondError(w, e.Message, e.StatusCode)
}
