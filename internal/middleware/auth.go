// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authorization,
// cross-origin handling, and rate limiting.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/olegiv/onav-go/internal/auth"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyClaims is the context key for verified session claims.
const ContextKeyClaims ContextKey = "session_claims"

// WriteError writes a JSON error body in the flat shape the front-end
// reads: {"error": "..."}.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// bearerToken extracts the token from a `Bearer <token>` Authorization
// header. Returns the empty string when the header is missing or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}

	return parts[1]
}

// RequireAdmin creates middleware that authorizes mutating requests.
// The bearer token must verify against the token service and carry the
// admin claim; anything else is a 401 without distinguishing why.
func RequireAdmin(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				WriteError(w, http.StatusUnauthorized, "admin access required")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil || !claims.IsAdmin {
				WriteError(w, http.StatusUnauthorized, "admin access required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the verified session claims from the request context.
// Returns nil outside of a RequireAdmin-guarded handler.
func GetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
