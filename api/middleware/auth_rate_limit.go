package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marivelle/catalog-backend/api/responses"
	"github.com/marivelle/catalog-backend/pkg/config"
	pkgerrors "github.com/marivelle/catalog-backend/pkg/errors"
	"github.com/marivelle/catalog-backend/pkg/logger"
)

type RateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// LoginRateLimit throttles the token endpoints per client IP and per hashed
// email. Raw addresses never reach the log stream; the email is hashed
// before it becomes a counter key.
func LoginRateLimit(cfg config.AuthRateLimitConfig, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || cfg.LoginWindow <= 0 || (cfg.LoginIPLimit <= 0 && cfg.LoginEmailLimit <= 0) {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if cfg.LoginIPLimit > 0 {
				if ip := clientIP(r); ip != "" {
					scope := fmt.Sprintf("login:ip:%s", ip)
					allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(cfg.LoginIPLimit), cfg.LoginWindow)
					if err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, w, "ip", count, cfg.LoginIPLimit, cfg.LoginWindow)
						return
					}
				}
			}

			if cfg.LoginEmailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if email := normalizeEmail(extractEmail(r.Header.Get("Content-Type"), body)); email != "" {
					scope := fmt.Sprintf("login:email:%s", hashValue(email))
					allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(cfg.LoginEmailLimit), cfg.LoginWindow)
					if err != nil {
						responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					}
					if !allowed {
						respondRateLimited(ctx, logg, w, "email", count, cfg.LoginEmailLimit, cfg.LoginWindow)
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, scope string, count int64, limit int, window time.Duration) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(window.Seconds()),
		})
		logg.Warn(logCtx, "auth.rate_limit.blocked")
	}
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

// extractEmail pulls the credential identifier out of any body shape the
// login endpoint accepts: JSON, urlencoded, or multipart forms.
func extractEmail(contentType string, payload []byte) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}

	switch {
	case strings.HasPrefix(mediaType, "application/x-www-form-urlencoded"):
		values, err := url.ParseQuery(string(payload))
		if err != nil {
			return ""
		}
		if email := values.Get("email"); email != "" {
			return email
		}
		return values.Get("username")

	case strings.HasPrefix(mediaType, "multipart/form-data"):
		boundary := params["boundary"]
		if boundary == "" {
			return ""
		}
		form, err := multipart.NewReader(bytes.NewReader(payload), boundary).ReadForm(1 << 20)
		if err != nil {
			return ""
		}
		defer form.RemoveAll()
		if values := form.Value["email"]; len(values) > 0 && values[0] != "" {
			return values[0]
		}
		if values := form.Value["username"]; len(values) > 0 {
			return values[0]
		}
		return ""

	default:
		var body struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return ""
		}
		return body.Email
	}
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
