package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/angelmondragon/localarthub-backend/api/responses"
	"github.com/angelmondragon/localarthub-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/localarthub-backend/pkg/errors"
	"github.com/angelmondragon/localarthub-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// FormRateLimitPolicy throttles one storefront form.
type FormRateLimitPolicy struct {
	name   string
	window time.Duration
	limit  int
}

// NewFormRateLimitPolicy builds a policy allowing limit submissions per window
// for each visitor, client IP and submitted email.
func NewFormRateLimitPolicy(name string, window time.Duration, limit int) FormRateLimitPolicy {
	return FormRateLimitPolicy{
		name:   strings.ToLower(strings.TrimSpace(name)),
		window: window,
		limit:  limit,
	}
}

func (p FormRateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

func (p FormRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "form"
	}
	return p.name
}

func (p FormRateLimitPolicy) scope(kind, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s:%s", p.normalizedName(), kind, value)
}

// FormRateLimit enforces fixed-window counters in front of a form endpoint.
// Without a store the policy is skipped.
func FormRateLimit(policy FormRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			checks := []struct{ kind, value string }{
				{"visitor", VisitorIDFromContext(ctx)},
				{"ip", clientIP(r)},
				{"email", hashValue(normalizeEmail(extractEmail(body)))},
			}
			for _, check := range checks {
				scope := policy.scope(check.kind, check.value)
				if scope == "" {
					continue
				}
				allowed, count, err := store.FixedWindowAllow(ctx, scope, int64(policy.limit), policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if !allowed {
					respondRateLimited(ctx, logg, w, policy, check.kind, count)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy FormRateLimitPolicy, scope string, count int64) {
	if logg != nil {
		logCtx := logg.WithFields(ctx, map[string]any{
			"scope":          scope,
			"policy":         policy.normalizedName(),
			"attempts":       count,
			"limit":          policy.limit,
			"window_seconds": int(policy.window.Seconds()),
		})
		logg.Warn(logCtx, "form.rate_limit.blocked")
	}
	err := pkgerrors.New(pkgerrors.CodeRateLimit, "Too many submissions. Please try again later.")
	responses.WriteNotifiedError(ctx, nil, w, err, enums.NotificationChannelForm)
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

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	if value == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
