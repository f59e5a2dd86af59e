// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a login session token stays valid.
const SessionTTL = 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, expired, malformed, or carrying unexpected claims.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims carries the admin identity inside a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// TokenService issues and verifies signed session tokens (HS256).
// Verification is stateless: no session record exists server-side, so a
// token cannot be revoked before it expires.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewTokenService creates a token service signing with the given secret.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{
		secret: secret,
		ttl:    SessionTTL,
		now:    time.Now,
	}
}

// NewTokenServiceWithTTL creates a token service with a custom session TTL.
func NewTokenServiceWithTTL(secret []byte, ttl time.Duration) *TokenService {
	ts := NewTokenService(secret)
	ts.ttl = ttl
	return ts
}

// Issue creates a signed session token for the given identity, expiring
// after the service TTL.
func (s *TokenService) Issue(username string, isAdmin bool) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: username,
		IsAdmin:  isAdmin,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks a token's signature and expiry and returns its claims.
// It is a total function over arbitrary input: any malformed or tampered
// token yields ErrInvalidToken, never a panic or an internal error.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
