// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON HTTP handlers for the navigation-site API.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/onav-go/internal/auth"
	"github.com/olegiv/onav-go/internal/kv"
	"github.com/olegiv/onav-go/internal/middleware"
	"github.com/olegiv/onav-go/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	admin      *store.Admin
	projects   *store.Projects
	categories *store.Categories
	tokens     *auth.TokenService
}

// NewHandler creates an API handler over the given store and token service.
func NewHandler(s kv.Store, tokens *auth.TokenService) *Handler {
	return &Handler{
		admin:      store.NewAdmin(s),
		projects:   store.NewProjects(s),
		categories: store.NewCategories(s),
		tokens:     tokens,
	}
}

// RouterConfig tunes the middleware around the API routes.
type RouterConfig struct {
	// AllowedOrigins feeds the CORS middleware; defaults to any origin.
	AllowedOrigins []string

	// AuthRPS and AuthBurst rate-limit the unauthenticated auth endpoints
	// per client IP. Zero AuthRPS disables the limiter (used in tests).
	AuthRPS   float64
	AuthBurst int
}

// Routes assembles the API router: public reads, rate-limited auth flow,
// and admin-guarded mutations. OPTIONS preflights are answered by the CORS
// middleware before any route matches.
func (h *Handler) Routes(cfg RouterConfig) chi.Router {
	if cfg.AllowedOrigins == nil {
		cfg.AllowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	requireAdmin := middleware.RequireAdmin(h.tokens)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)

		r.Route("/auth", func(r chi.Router) {
			if cfg.AuthRPS > 0 {
				r.Use(middleware.RateLimit(cfg.AuthRPS, cfg.AuthBurst))
			}
			r.Post("/setup", h.Setup)
			r.Post("/login", h.Login)
			r.Post("/verify", h.VerifyToken)
		})

		r.Get("/projects", h.ListProjects)
		r.Get("/categories", h.ListCategories)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Post("/projects", h.CreateProject)
			r.Put("/projects/{id}", h.UpdateProject)
			r.Delete("/projects/{id}", h.DeleteProject)
			r.Post("/categories", h.CreateCategory)
			r.Put("/categories/{id}", h.UpdateCategory)
			r.Delete("/categories/{id}", h.DeleteCategory)
		})
	})

	return r
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes the flat error body the front-end reads.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	middleware.WriteError(w, statusCode, message)
}

// writeInternalError hides the failure detail behind a generic message so
// storage internals never leak to clients.
func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody decodes a JSON request body into dst.
// Writes a 400 and returns false on malformed input.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

// StatusResponse contains API status information.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok", Version: "v1"})
}
