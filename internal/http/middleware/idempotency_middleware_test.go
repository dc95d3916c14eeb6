package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

func idemEngine(lookup IdempotencyLookup, authed bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	chain := []gin.HandlerFunc{}
	if authed {
		chain = append(chain, func(c *gin.Context) {
			c.Set(ctxKeyUser, &domain.User{UserID: 42})
			c.Set(ctxKeyUserID, int64(42))
			c.Next()
		})
	}
	chain = append(chain, IdempotencyValidator(IdempotencyOptions{MaxLen: 20}, lookup))
	chain = append(chain, func(c *gin.Context) {
		key, _ := GetIdempotencyKey(c)
		c.JSON(http.StatusOK, gin.H{"key": key, "replay": IsReplay(c)})
	})
	r.POST("/orders", chain...)
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyValidator_NoHeaderPassesThrough(t *testing.T) {
	r := idemEngine(nil, true)
	w := postWithKey(r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
}

func TestIdempotencyValidator_RejectsMalformedKey(t *testing.T) {
	r := idemEngine(nil, true)

	for _, bad := range []string{"has spaces", "way-too-long-for-the-limit", "emoji🙂"} {
		w := postWithKey(r, bad)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("key %q: status %d, want 400", bad, w.Code)
		}
	}
}

func TestIdempotencyValidator_MarksReplay(t *testing.T) {
	var sawUser int64
	var sawKey string
	lookup := func(_ context.Context, userID int64, key string, _ time.Time) (bool, error) {
		sawUser, sawKey = userID, key
		return true, nil
	}
	r := idemEngine(lookup, true)

	w := postWithKey(r, "retry-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if sawUser != 42 || sawKey != "retry-1" {
		t.Fatalf("lookup saw user=%d key=%q", sawUser, sawKey)
	}
	if body := w.Body.String(); body == "" || !containsAll(body, `"replay":true`, `"key":"retry-1"`) {
		t.Fatalf("replay not marked: %s", body)
	}
}

func TestIdempotencyValidator_NoUserSkipsLookup(t *testing.T) {
	called := false
	lookup := func(context.Context, int64, string, time.Time) (bool, error) {
		called = true
		return true, nil
	}
	r := idemEngine(lookup, false)

	w := postWithKey(r, "retry-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if called {
		t.Fatalf("lookup ran without an authenticated user")
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
