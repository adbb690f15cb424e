package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/stockmasterhq/stockmaster-backend/api/responses"
	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	pkgerrors "github.com/stockmasterhq/stockmaster-backend/pkg/errors"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
)

type rateLimitStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	RateLimitKey(scope string) string
}

// LoginRateLimiter applies fixed-window limits to the login endpoint, keyed
// per email and per client IP. Redis outages fail open so an unavailable
// cache cannot lock everyone out.
type LoginRateLimiter struct {
	store rateLimitStore
	cfg   config.AuthRateLimitConfig
	logg  *logger.Logger
}

func NewLoginRateLimiter(store rateLimitStore, cfg config.AuthRateLimitConfig, logg *logger.Logger) *LoginRateLimiter {
	return &LoginRateLimiter{store: store, cfg: cfg, logg: logg}
}

func (l *LoginRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		email, restored, err := peekEmail(r)
		if err != nil {
			responses.WriteError(ctx, w, l.logg, err)
			return
		}
		r.Body = restored

		if blocked := l.exceeded(ctx, "login:ip:"+clientIP(r), l.cfg.LoginIPLimit); blocked {
			responses.WriteError(ctx, w, l.logg, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts"))
			return
		}
		if email != "" {
			if blocked := l.exceeded(ctx, "login:email:"+email, l.cfg.LoginEmailLimit); blocked {
				responses.WriteError(ctx, w, l.logg, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts"))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (l *LoginRateLimiter) exceeded(ctx context.Context, scope string, limit int) bool {
	if limit <= 0 {
		return false
	}
	count, err := l.store.IncrWithTTL(ctx, l.store.RateLimitKey(scope), l.cfg.LoginWindow)
	if err != nil {
		if l.logg != nil {
			l.logg.Warn(ctx, "rate limit store unavailable, failing open")
		}
		return false
	}
	return count > int64(limit)
}

// peekEmail reads the login body to extract the email key, handing back a
// replayable body for the handler.
func peekEmail(r *http.Request) (string, io.ReadCloser, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return "", nil, pkgerrors.New(pkgerrors.CodeValidation, "unable to read request body")
	}
	_ = r.Body.Close()

	var probe struct {
		Email string `json:"email"`
	}
	// Malformed JSON is left for the handler's decoder to report.
	_ = json.Unmarshal(raw, &probe)

	email := strings.ToLower(strings.TrimSpace(probe.Email))
	return email, io.NopCloser(bytes.NewReader(raw)), nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
