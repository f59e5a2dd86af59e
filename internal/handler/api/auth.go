// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/onav-go/internal/auth"
	"github.com/olegiv/onav-go/internal/store"
)

// minPasswordLen is the minimum accepted admin password length.
const minPasswordLen = 6

// SetupRequest is the body for POST /api/auth/setup.
type SetupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// VerifyRequest is the body for POST /api/auth/verify.
type VerifyRequest struct {
	Token string `json:"token"`
}

// VerifyResponse echoes the claims of a valid session token.
type VerifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username,omitempty"`
	IsAdmin  bool   `json:"isAdmin,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Setup handles POST /api/auth/setup: one-shot creation of the admin
// credential. Once an admin exists the endpoint always fails, regardless
// of the submitted credentials.
func (h *Handler) Setup(w http.ResponseWriter, r *http.Request) {
	var req SetupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	if _, err := h.admin.Create(r.Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, store.ErrAlreadyConfigured) {
			writeError(w, http.StatusBadRequest, "admin account already configured")
			return
		}
		slog.Error("admin setup failed", "error", err)
		writeInternalError(w)
		return
	}

	slog.Info("admin account created", "username", req.Username)
	writeJSON(w, http.StatusOK, map[string]string{"message": "admin account created"})
}

// Login handles POST /api/auth/login: verifies the credential and issues
// a 24h session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	cred, err := h.admin.Get(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			writeError(w, http.StatusNotFound, "admin account not configured")
			return
		}
		slog.Error("reading admin credential failed", "error", err)
		writeInternalError(w)
		return
	}

	valid, err := auth.CheckPassword(req.Password, cred.PasswordHash)
	if err != nil {
		slog.Warn("stored credential hash unreadable", "error", err)
	}
	if cred.Username != req.Username || !valid {
		slog.Warn("failed login attempt", "username", req.Username, "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.tokens.Issue(cred.Username, true)
	if err != nil {
		slog.Error("issuing session token failed", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: cred.Username,
		Message:  "login successful",
	})
}

// VerifyToken handles POST /api/auth/verify. The front-end calls it on
// page load to silently restore a stored session; an invalid or expired
// token is a normal outcome, not a server failure.
func (h *Handler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Token == "" {
		writeJSON(w, http.StatusBadRequest, VerifyResponse{Valid: false, Error: "token is required"})
		return
	}

	claims, err := h.tokens.Verify(req.Token)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, VerifyResponse{Valid: false, Error: "token invalid or expired"})
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{
		Valid:    true,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	})
}
