package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/eastlify/eastlify-backend/api/responses"
	pkgAuth "github.com/eastlify/eastlify-backend/pkg/auth"
	"github.com/eastlify/eastlify-backend/pkg/config"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the claims.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), logg, claims)))
		})
	}
}

// AuthOptional seeds the context with claims when a valid token is present
// and lets anonymous requests through untouched. Routes like activity
// recording accept both.
func AuthOptional(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				// a presented but broken token is rejected, not ignored
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), logg, claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

func contextWithClaims(ctx context.Context, logg *logger.Logger, claims *pkgAuth.AccessTokenClaims) context.Context {
	ctx = WithUserID(ctx, claims.UserID.String())
	ctx = WithRole(ctx, string(claims.Role))
	if claims.ShopID != nil {
		ctx = WithShopID(ctx, claims.ShopID.String())
	}

	if logg != nil {
		fields := map[string]any{
			"user_id":    claims.UserID.String(),
			"actor_role": string(claims.Role),
		}
		if claims.ShopID != nil {
			fields["shop_id"] = claims.ShopID.String()
		}
		ctx = logg.WithFields(ctx, fields)
	}
	return ctx
}
