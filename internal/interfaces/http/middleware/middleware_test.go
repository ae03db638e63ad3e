package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSessionMintsAndEchoesID(t *testing.T) {
	r := gin.New()
	r.Use(Session())
	var seen string
	r.GET("/x", func(c *gin.Context) { seen = SessionID(c) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if seen == "" || w.Header().Get(SessionIDHeader) != seen {
		t.Fatalf("minted session %q, header %q", seen, w.Header().Get(SessionIDHeader))
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(SessionIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if seen != "abc-123" {
		t.Errorf("session = %q, want abc-123", seen)
	}
}

func TestSessionRejectsUnsafeID(t *testing.T) {
	for _, id := range []string{"a:b", "has space", string(make([]byte, 200))} {
		if validSessionID(id) {
			t.Errorf("validSessionID(%q) = true", id)
		}
	}
}

type fakeLimiter struct {
	allowed int
	calls   int
	err     error
	keys    []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	f.calls++
	f.keys = append(f.keys, key)
	if f.err != nil {
		return false, f.err
	}
	return f.calls <= f.allowed, nil
}

func (f *fakeLimiter) Remaining(context.Context, string, int, time.Duration) (int, error) {
	return f.allowed - f.calls, nil
}

func newLimitedEngine(limiter RateLimiter, enabled bool) *gin.Engine {
	r := gin.New()
	r.Use(Session())
	r.Use(RateLimit(RateLimitConfig{Enabled: enabled, RequestsPerMinute: 2}, limiter,
		func(session, endpoint string) string { return session + "|" + endpoint }))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func serve(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(SessionIDHeader, "s1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	limiter := &fakeLimiter{allowed: 1}
	r := newLimitedEngine(limiter, true)

	if w := serve(r); w.Code != http.StatusOK {
		t.Fatalf("first request status = %d", w.Code)
	}
	if w := serve(r); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d", w.Code)
	}
	if limiter.keys[0] != "s1|/x" {
		t.Errorf("key = %q", limiter.keys[0])
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newLimitedEngine(&fakeLimiter{err: errors.New("redis down")}, true)
	if w := serve(r); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	limiter := &fakeLimiter{}
	r := newLimitedEngine(limiter, false)
	if w := serve(r); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if limiter.calls != 0 {
		t.Errorf("limiter called %d times", limiter.calls)
	}
}

func TestRecoveryReturns500(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
}
