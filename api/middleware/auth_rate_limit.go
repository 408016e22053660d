package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/eastlify/eastlify-backend/api/responses"
	"github.com/eastlify/eastlify-backend/pkg/config"
	pkgerrors "github.com/eastlify/eastlify-backend/pkg/errors"
	"github.com/eastlify/eastlify-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// AuthRateLimitPolicy caps how often an auth endpoint may be hit within a
// rolling window, counted per client IP and per submitted email.
type AuthRateLimitPolicy struct {
	Name       string
	Window     time.Duration
	IPLimit    int
	EmailLimit int
}

// LoginPolicy derives the login throttle from the service configuration.
func LoginPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:       "login",
		Window:     cfg.LoginWindow,
		IPLimit:    cfg.LoginIPLimit,
		EmailLimit: cfg.LoginEmailLimit,
	}
}

// RegisterPolicy derives the signup throttle from the service configuration.
func RegisterPolicy(cfg config.AuthRateLimitConfig) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		Name:       "register",
		Window:     cfg.RegisterWindow,
		IPLimit:    cfg.RegisterIPLimit,
		EmailLimit: cfg.RegisterEmailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.EmailLimit > 0)
}

func (p AuthRateLimitPolicy) scopeName() string {
	name := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" {
		return "auth"
	}
	return name
}

// counterScope is one throttled dimension of a request (its IP or its email).
type counterScope struct {
	kind    string
	key     string
	subject string
	limit   int
}

// AuthRateLimit throttles an auth endpoint per the policy. The email counter
// reads the request body, so the body is restored before the handler runs.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil || !policy.enabled() {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var scopes []counterScope
			if ip := clientIP(r); ip != "" && policy.IPLimit > 0 {
				scopes = append(scopes, counterScope{
					kind:    "ip",
					key:     "rl:ip:" + policy.scopeName() + ":" + ip,
					subject: ip,
					limit:   policy.IPLimit,
				})
			}
			if policy.EmailLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if digest := emailDigest(body); digest != "" {
					scopes = append(scopes, counterScope{
						kind:    "email",
						key:     "rl:email:" + policy.scopeName() + ":" + digest,
						subject: digest,
						limit:   policy.EmailLimit,
					})
				}
			}

			for _, scope := range scopes {
				count, err := store.IncrWithTTL(ctx, scope.key, policy.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if count > int64(scope.limit) {
					if logg != nil {
						logCtx := logg.WithFields(ctx, map[string]any{
							"scope":          scope.kind,
							"subject":        scope.subject,
							"policy":         policy.scopeName(),
							"attempts":       count,
							"limit":          scope.limit,
							"window_seconds": int(policy.Window.Seconds()),
						})
						logg.Warn(logCtx, "auth.rate_limit.blocked")
					}
					responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// emailDigest hashes the normalized email from a JSON auth payload so the
// throttle key never stores the address itself.
func emailDigest(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	email := strings.ToLower(strings.TrimSpace(body.Email))
	if email == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:])
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
