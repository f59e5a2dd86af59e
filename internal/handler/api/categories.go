// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/onav-go/internal/model"
	"github.com/olegiv/onav-go/internal/store"
)

// CategoryRequest is the body for creating and renaming a category.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoriesResponse wraps the category list.
type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

// CategoryResponse wraps a single category with a status message.
type CategoryResponse struct {
	Message  string         `json:"message"`
	Category model.Category `json:"category"`
}

// ListCategories handles GET /api/categories. Public.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		slog.Error("listing categories failed", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

// CreateCategory handles POST /api/categories. Admin only.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "category name is required")
		return
	}

	category, err := h.categories.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusBadRequest, "category name already exists")
			return
		}
		slog.Error("creating category failed", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, CategoryResponse{
		Message:  "category created",
		Category: *category,
	})
}

// UpdateCategory handles PUT /api/categories/{id}. Admin only; replaces
// only the name.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req CategoryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "category name is required")
		return
	}

	category, err := h.categories.Update(r.Context(), id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "category not found")
		case errors.Is(err, store.ErrConflict):
			writeError(w, http.StatusBadRequest, "category name already exists")
		default:
			slog.Error("updating category failed", "id", id, "error", err)
			writeInternalError(w)
		}
		return
	}

	writeJSON(w, http.StatusOK, CategoryResponse{
		Message:  "category updated",
		Category: *category,
	})
}

// DeleteCategory handles DELETE /api/categories/{id}. Admin only.
// Projects referencing the category keep their reference; the front-end
// falls back to an "all" filter when a pinned category disappears.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.categories.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		slog.Error("deleting category failed", "id", id, "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
