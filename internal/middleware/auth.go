package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/zhuangdx/credit-card-dashboard/internal/auth"
)

// RequireAuth validates the Authorization bearer token and injects the
// user_id into the request context. A missing token is 403; a token
// that is present but invalid or expired is 401, which clients treat as
// a signal to drop their cached credentials.
func RequireAuth(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"no token provided"}`, http.StatusForbidden)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				http.Error(w, `{"error":"no token provided"}`, http.StatusForbidden)
				return
			}

			userID, err := tokens.Parse(parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
