// Package services – AuthService
//
// This file implements the credential service: issuing and verifying bearer
// tokens bound to a user identifier. Tokens are HS256-signed JWTs whose
// subject claim carries the decimal user id and whose expiry is a fixed
// window from issuance. There is no refresh-token mechanism.
//
// Verification resolves the subject to a stored User row on every call, so
// a deleted user cannot keep using an old token.
package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"gorm.io/gorm"

	"github.com/ogwplus/go-store-backend/internal/domain"
	"github.com/ogwplus/go-store-backend/internal/repo"
)

// TokenTypeBearer is the token_type marker returned with every issued token.
const TokenTypeBearer = "bearer"

// Token is the credential pair handed to API clients.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AuthService issues and verifies signed bearer tokens.
type AuthService struct {
	// DB is the GORM handle used to resolve user records.
	DB *gorm.DB
	// Secret is the HMAC signing key.
	Secret []byte
	// TTL is the fixed validity window for issued tokens.
	TTL time.Duration

	// now allows tests to pin the clock; defaults to time.Now.
	now func() time.Time
}

// NewAuthService constructs an AuthService with the given signing key and
// token lifetime. A non-positive ttl falls back to 30 minutes.
func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &AuthService{DB: db, Secret: secret, TTL: ttl, now: time.Now}
}

// IssueToken returns a signed token for userID, or ErrUserNotFound when no
// such user exists. The subject claim is the decimal user id; expiry is
// now + TTL.
func (s *AuthService) IssueToken(ctx context.Context, userID int64) (*Token, error) {
	if _, err := repo.GetUser(ctx, s.DB, userID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	claims := jwt.StandardClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: s.timeNow().Add(s.TTL).Unix(),
		IssuedAt:  s.timeNow().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, TokenType: TokenTypeBearer}, nil
}

// VerifyToken validates signature and expiry, extracts the subject claim,
// and resolves it to a stored User. Every failure mode collapses to
// ErrInvalidToken so callers cannot distinguish a forged token from an
// expired one.
func (s *AuthService) VerifyToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	var claims jwt.StandardClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	uid, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	// Resolved on every request: a deleted user cannot use an old token.
	u, err := repo.GetUser(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) timeNow() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
