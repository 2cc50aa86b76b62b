package middleware

import (
	"context"
	"net/http"

	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/internal/session"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// roleResolver resolves the session for an authenticated user. The role
// lives on the CMS profile, not in the token.
type roleResolver interface {
	Me(ctx context.Context, userID int, bearer string) (*session.Session, error)
}

// RequireRole resolves the user's profile and rejects the request unless
// the role matches. It must run after Auth.
func RequireRole(role string, sessions roleResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sessions == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
				return
			}

			userID := UserIDFromContext(r.Context())
			bearer := BearerFromContext(r.Context())
			current, err := sessions.Me(r.Context(), userID, bearer)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if current.User.Role != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}

			ctx := WithRole(r.Context(), current.User.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
