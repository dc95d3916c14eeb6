package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func limitedEngine(rl *RateLimiter, pre ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append(pre, rl.Handler(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/ping", handlers...)
	return r
}

func TestRateLimiter_BurstThen429(t *testing.T) {
	rl := NewRateLimiter(0, 2, KeyByUserOrIP()) // zero refill: only the burst
	r := limitedEngine(rl)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: status %d, want 200", i, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") != "1" {
		t.Fatalf("missing Retry-After header")
	}
}

func TestRateLimiter_KeyedPerUser(t *testing.T) {
	rl := NewRateLimiter(0, 1, KeyByUserOrIP())

	// Fake auth middleware: user id comes from a header for the test.
	fakeAuth := func(c *gin.Context) {
		if c.GetHeader("X-Test-User") == "1" {
			c.Set(ctxKeyUserID, int64(1))
		}
		c.Next()
	}
	r := limitedEngine(rl, fakeAuth)

	asUser := func() int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Test-User", "1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}
	asIP := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		return w.Code
	}

	if asUser() != http.StatusOK {
		t.Fatalf("first user request rejected")
	}
	if asUser() != http.StatusTooManyRequests {
		t.Fatalf("second user request not limited")
	}
	// The anonymous bucket is independent of the user bucket.
	if asIP() != http.StatusOK {
		t.Fatalf("anonymous request caught by user bucket")
	}
}

func TestRateLimiter_ReplayBypass(t *testing.T) {
	rl := NewRateLimiter(0, 1, KeyByUserOrIP())

	markReplay := func(c *gin.Context) {
		c.Set(ctxKeyRateBypass, true)
		c.Next()
	}
	r := limitedEngine(rl, markReplay)

	// Way past any burst, every replay still passes.
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("replay %d limited: status %d", i, w.Code)
		}
	}
}
