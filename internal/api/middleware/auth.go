package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/vybr8r/internal/api/services"
	"github.com/rohits-web03/vybr8r/internal/utils"
)

type contextKey string

const UserIDKey contextKey = "userID"

type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>". The token is trusted
// as of issuance; the only live check is that its user still exists.
func AuthMiddleware(tokens TokenParser, users UserChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tokenStr, ok := bearerToken(r)
			if !ok {
				utils.Fail(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			userID, err := tokens.Parse(tokenStr)
			if err != nil {
				msg := "Invalid token"
				if errors.Is(err, services.ErrTokenExpired) {
					msg = "Token expired"
				}
				logger.Debug("rejected credential", "error", err, "path", r.URL.Path)
				utils.Fail(w, http.StatusUnauthorized, msg)
				return
			}

			exists, err := users.Exists(r.Context(), userID)
			if err != nil {
				logger.Error("user lookup failed", "error", err, "user_id", userID)
				utils.Fail(w, http.StatusInternalServerError, "Server error")
				return
			}
			if !exists {
				utils.Fail(w, http.StatusNotFound, "User not found")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// UserID returns the authenticated user id placed by AuthMiddleware.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}
