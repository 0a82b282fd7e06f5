package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mindloom/companion-ai/backend/internal/model/user"
	"github.com/mindloom/companion-ai/backend/internal/service/auth"
	"github.com/mindloom/companion-ai/backend/pkg/utils"
)

type contextKey struct{}

var userKey contextKey

// WithUser stores the authenticated account on the request context.
func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom retrieves the authenticated account placed by Auth.
func UserFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userKey).(*user.User)
	return u, ok
}

// Auth rejects requests without a valid bearer token and attaches the
// resolved account to the context for downstream handlers.
func Auth(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const prefix = "Bearer "
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, prefix) {
				utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			u, err := authSvc.Authenticate(r.Context(), strings.TrimSpace(header[len(prefix):]))
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "could not validate credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}
