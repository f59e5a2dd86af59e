// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/onav-go/internal/auth"
	"github.com/olegiv/onav-go/internal/kv"
)

// TestEndToEnd walks the whole admin flow: bootstrap, login, authorized
// create, rejected anonymous create, delete, empty listing.
func TestEndToEnd(t *testing.T) {
	router, _ := newTestRouter(t)

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
	var login LoginResponse
	decodeResponse(t, rec, &login)

	rec = doJSON(t, router, http.MethodPost, "/api/projects", login.Token,
		ProjectRequest{Name: "A", URL: "https://x.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("authorized create status = %d: %s", rec.Code, rec.Body.String())
	}
	var created ProjectResponse
	decodeResponse(t, rec, &created)

	rec = doJSON(t, router, http.MethodPost, "/api/projects", "",
		ProjectRequest{Name: "A", URL: "https://x.com"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, router, http.MethodDelete, "/api/projects/"+created.Project.ID, login.Token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
	var list ProjectsResponse
	decodeResponse(t, rec, &list)
	if len(list.Projects) != 0 {
		t.Fatalf("final listing = %+v, want empty", list.Projects)
	}
}

func TestRouter_PreflightBeforeAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	// Preflight against a guarded route succeeds without credentials.
	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "https://nav.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin = %q, want *", got)
	}
}

func TestRouter_CORSOnResponses(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Allow-Origin on GET = %q, want *", got)
	}
}

func TestStatus(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/status", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp StatusResponse
	decodeResponse(t, rec, &resp)
	if resp.Status != "ok" {
		t.Errorf("status body = %+v", resp)
	}
}

func TestStorageFault(t *testing.T) {
	// A closed store makes every read fail; the handler must answer with
	// a generic 500, not leak the underlying error.
	s := kv.NewMemoryStore()
	_ = s.Close()

	h := NewHandler(s, auth.NewTokenService(testSecret))
	router := h.Routes(RouterConfig{})

	rec := doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	decodeResponse(t, rec, &body)
	if body["error"] != "internal server error" {
		t.Errorf("error body = %q, want generic message", body["error"])
	}
}

func TestAuthRateLimit(t *testing.T) {
	s := kv.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })

	h := NewHandler(s, auth.NewTokenService(testSecret))
	router := h.Routes(RouterConfig{AuthRPS: 0.001, AuthBurst: 1})

	rec := doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Username: "root", Password: "secret1"})
	if rec.Code == http.StatusTooManyRequests {
		t.Fatalf("first request already limited")
	}

	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", "",
		LoginRequest{Username: "root", Password: "secret1"})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", rec.Code)
	}
}
