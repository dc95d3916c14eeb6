package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

type stubVerifier struct {
	user *domain.User
	err  error
	got  string
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (*domain.User, error) {
	s.got = token
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func authEngine(v TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", RequireAuth(v), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": u.UserID})
	})
	return r
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := authEngine(&stubVerifier{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if w.Header().Get("WWW-Authenticate") != "Bearer" {
		t.Fatalf("missing WWW-Authenticate challenge")
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	v := &stubVerifier{err: errors.New("bad token")}
	r := authEngine(v)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	if v.got != "nope" {
		t.Fatalf("verifier saw %q, want %q", v.got, "nope")
	}
}

func TestRequireAuth_SetsContextUser(t *testing.T) {
	v := &stubVerifier{user: &domain.User{UserID: 42, FirstName: "Ada"}}
	r := authEngine(v)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d body %s", w.Code, w.Body.String())
	}
}

func TestBearerToken_Formats(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"}, // scheme is case-insensitive
		{"Bearer   abc  ", "abc"},
		{"abc", "abc"}, // bare token accepted
	}
	for _, tc := range cases {
		if got := bearerToken(tc.in); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
