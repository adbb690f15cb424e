package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
)

type memoryLimiterStore struct {
	counts map[string]int64
	fail   bool
}

func (m *memoryLimiterStore) IncrWithTTL(_ context.Context, key string, _ time.Duration) (int64, error) {
	if m.fail {
		return 0, context.DeadlineExceeded
	}
	if m.counts == nil {
		m.counts = map[string]int64{}
	}
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memoryLimiterStore) RateLimitKey(scope string) string {
	return "rate_limit:" + scope
}

func limiterCfg() config.AuthRateLimitConfig {
	return config.AuthRateLimitConfig{
		LoginWindow:     time.Minute,
		LoginEmailLimit: 2,
		LoginIPLimit:    10,
	}
}

func loginRequest(email string) *http.Request {
	r := httptest.NewRequest("POST", "/api/v1/auth/login",
		strings.NewReader(`{"email":"`+email+`","password":"x"}`))
	r.RemoteAddr = "203.0.113.9:4242"
	return r
}

func TestLoginRateLimitPerEmail(t *testing.T) {
	store := &memoryLimiterStore{}
	limiter := NewLoginRateLimiter(store, limiterCfg(), testLogger())

	var handled int
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handled++
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest("a@b.com"))
		if rec.Code != http.StatusOK {
			t.Fatalf("attempt %d blocked: %d", i+1, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("a@b.com"))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if handled != 2 {
		t.Fatalf("handler ran %d times", handled)
	}

	// Another email is unaffected.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("other@b.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("other email blocked: %d", rec.Code)
	}
}

func TestLoginRateLimitFailsOpen(t *testing.T) {
	store := &memoryLimiterStore{fail: true}
	limiter := NewLoginRateLimiter(store, limiterCfg(), testLogger())

	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("a@b.com"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected fail-open, got %d", rec.Code)
	}
}

func TestLoginRateLimitBodyReplayed(t *testing.T) {
	store := &memoryLimiterStore{}
	limiter := NewLoginRateLimiter(store, limiterCfg(), testLogger())

	var seen string
	handler := limiter.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		seen = string(buf[:n])
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest("a@b.com"))
	if !strings.Contains(seen, "a@b.com") {
		t.Fatalf("handler must see the original body, got %q", seen)
	}
}
