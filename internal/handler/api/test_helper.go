// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/onav-go/internal/auth"
	"github.com/olegiv/onav-go/internal/kv"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// newTestRouter builds a handler over a fresh in-memory store with the
// auth rate limiter disabled.
func newTestRouter(t *testing.T) (chi.Router, *Handler) {
	t.Helper()

	s := kv.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })

	h := NewHandler(s, auth.NewTokenService(testSecret))
	return h.Routes(RouterConfig{}), h
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router chi.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decodeResponse unmarshals a recorded JSON response body.
func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// setupAndLogin runs the bootstrap flow and returns a valid admin token.
func setupAndLogin(t *testing.T, router chi.Router) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/auth/setup", "",
		SetupRequest{Username: "root", Password: "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("setup status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Username: "root", Password: "secret1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp LoginResponse
	decodeResponse(t, rec, &resp)
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}
