package limiter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/local-avatar-api/internal/limiter"
	"github.com/rs/zerolog"
)

func TestIPRateLimiter_PerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := limiter.New(ctx, 1, 2, zerolog.Nop())

	if !l.Allow("10.0.0.1") || !l.Allow("10.0.0.1") {
		t.Fatal("Burst of 2 should be allowed")
	}
	if l.Allow("10.0.0.1") {
		t.Error("Third immediate request should be rejected")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("A different IP has its own bucket")
	}
	if l.Len() != 2 {
		t.Errorf("Expected 2 tracked IPs, got %d", l.Len())
	}
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := limiter.New(ctx, 10, 1, zerolog.Nop())
	l.Allow("10.0.0.1")

	if removed := l.Cleanup(time.Now().Add(time.Minute)); removed != 1 {
		t.Errorf("Expected idle limiter to be removed, got %d", removed)
	}
	if l.Len() != 0 {
		t.Errorf("Expected no tracked IPs, got %d", l.Len())
	}
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := limiter.New(ctx, 1, 1, zerolog.Nop())
	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 2)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.1:1234"
		r.ServeHTTP(w, req)
		codes[i] = w.Code
	}

	if codes[0] != http.StatusOK {
		t.Errorf("Expected first request 200, got %d", codes[0])
	}
	if codes[1] != http.StatusTooManyRequests {
		t.Errorf("Expected second request 429, got %d", codes[1])
	}
}
