package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dadihq/dadi-gateway/internal/auth"
	"github.com/dadihq/dadi-gateway/internal/config"
)

func limitConfig(enabled bool) func() config.RateLimitConfig {
	return func() config.RateLimitConfig {
		return config.RateLimitConfig{
			Enabled:           enabled,
			RequestsPerWindow: 60,
			Window:            time.Minute,
		}
	}
}

func TestMiddleware_NilRedisFailsOpen(t *testing.T) {
	mw := Middleware(NewLimiter(nil), limitConfig(true))

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("POST", "/api/chat", nil)
	ctx := auth.ContextWithIdentity(context.Background(), &auth.Identity{Email: "kari@example.no"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))

	if !called {
		t.Error("expected request to pass without redis")
	}
	if w.Header().Get(headerRateLimitRequests) != "60" {
		t.Errorf("expected limit header, got %q", w.Header().Get(headerRateLimitRequests))
	}
	if w.Header().Get(headerRateLimitRemaining) == "" {
		t.Error("expected remaining header")
	}
}

func TestMiddleware_Disabled(t *testing.T) {
	mw := Middleware(NewLimiter(nil), limitConfig(false))

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("POST", "/api/chat", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !called {
		t.Error("expected request to pass when disabled")
	}
	if w.Header().Get(headerRateLimitRequests) != "" {
		t.Error("disabled limiter must not set headers")
	}
}

func TestMiddleware_NoIdentityPassesThrough(t *testing.T) {
	mw := Middleware(NewLimiter(nil), limitConfig(true))

	called := false
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("POST", "/api/chat", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("requests without identity are the auth middleware's problem")
	}
}
