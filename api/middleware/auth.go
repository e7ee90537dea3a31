package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/marivelle/catalog-backend/api/responses"
	pkgauth "github.com/marivelle/catalog-backend/pkg/auth"
	"github.com/marivelle/catalog-backend/pkg/config"
	"github.com/marivelle/catalog-backend/pkg/db/models"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
)

// UserLoader resolves the authenticated account from the token subject.
type UserLoader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// Auth validates a bearer token, loads the account, and seeds the request
// context. Inactive accounts are rejected here so downstream handlers only
// ever see usable users.
func Auth(cfg config.JWTConfig, users UserLoader, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}
			userID, err := claims.UserID()
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
				return
			}

			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
					return
				}
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load user"))
				return
			}
			if !user.IsActive {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "inactive user"))
				return
			}

			ctx := WithUser(r.Context(), user)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.Subject)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperuser gates admin surfaces. Must run after Auth.
func RequireSuperuser(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}
			if !user.IsSuperuser {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "superuser privileges required"))
				return
			}
			next.ServeHTTP(w, r)
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
