package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tiopelotte/storefront-api/api/responses"
	"github.com/tiopelotte/storefront-api/pkg/config"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// Auth validates a CMS-issued bearer token and seeds the request context
// with the user id and the raw token for proxied calls.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			userID, err := parseUserToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = WithBearer(ctx, token)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"user_id": userID})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthOptional seeds the context with the user identity when a valid bearer
// token is present and lets the request through anonymously otherwise.
// Checkout uses it so guests can buy while logged-in buyers get their pedido
// linked to the account.
func AuthOptional(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := parseUserToken(cfg, token)
			if err != nil {
				if logg != nil {
					logg.Warn(r.Context(), "ignoring invalid bearer on optional-auth route")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = WithBearer(ctx, token)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{"user_id": userID})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// parseUserToken verifies an HS256 token signed with the CMS secret and
// extracts the numeric user id claim.
func parseUserToken(cfg config.JWTConfig, raw string) (int, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256"})}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}, opts...)
	if err != nil {
		return 0, err
	}

	id, ok := claims["id"].(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("token has no user id claim")
	}
	return int(id), nil
}
