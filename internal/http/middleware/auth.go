// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements bearer-token authentication. The middleware extracts
// the Authorization header, verifies the token through the credential
// service, and stores the resolved user in the Gin context for handlers.
// Verification resolves the subject against the users table on every
// request; there is no session cache, so a deleted user is locked out the
// moment their row disappears.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ogwplus/go-store-backend/internal/domain"
)

const (
	// ctxKeyUser is the Gin context key holding the authenticated *domain.User.
	ctxKeyUser = "authUser"
	// ctxKeyUserID is the Gin context key holding the authenticated user id.
	// The rate limiter and loggers read it without needing the full record.
	ctxKeyUserID = "userID"
)

// TokenVerifier resolves a raw bearer token to a stored user record.
// services.AuthService satisfies this contract.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.User, error)
}

// CurrentUser returns the authenticated user stored by RequireAuth.
// The second return value is false on unauthenticated routes.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(ctxKeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*domain.User)
	return u, ok
}

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token. On failure it answers 401 with the standard error envelope
// and a WWW-Authenticate challenge; on success it stashes the resolved user
// under the context keys read by CurrentUser and the rate limiter.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			unauthorized(c, "missing bearer token")
			return
		}

		u, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c, "could not validate credentials")
			return
		}

		c.Set(ctxKeyUser, u)
		c.Set(ctxKeyUserID, u.UserID)
		c.Next()
	}
}

// bearerToken extracts the credential from an Authorization header value.
// Both "Bearer <token>" and a bare token are accepted.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return header
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"request_id": c.Writer.Header().Get("X-Request-ID"),
		"code":       "unauthorized",
		"message":    msg,
	})
}
