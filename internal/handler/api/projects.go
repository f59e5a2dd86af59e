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

// ProjectRequest is the body for creating and updating a project.
// Optional fields omitted from the body reset to their defaults.
type ProjectRequest struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

// ProjectsResponse wraps the project list.
type ProjectsResponse struct {
	Projects []model.Project `json:"projects"`
}

// ProjectResponse wraps a single project with a status message.
type ProjectResponse struct {
	Message string        `json:"message"`
	Project model.Project `json:"project"`
}

func (req ProjectRequest) input() store.ProjectInput {
	return store.ProjectInput{
		Name:        req.Name,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
	}
}

// ListProjects handles GET /api/projects. Public, unfiltered; search and
// filtering happen in the front-end.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projects.List(r.Context())
	if err != nil {
		slog.Error("listing projects failed", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, ProjectsResponse{Projects: projects})
}

// CreateProject handles POST /api/projects. Admin only.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, "project name and url are required")
		return
	}

	project, err := h.projects.Create(r.Context(), req.input())
	if err != nil {
		slog.Error("creating project failed", "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusCreated, ProjectResponse{
		Message: "project created",
		Project: *project,
	})
}

// UpdateProject handles PUT /api/projects/{id}. Admin only.
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProjectRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name == "" || req.URL == "" {
		writeError(w, http.StatusBadRequest, "project name and url are required")
		return
	}

	project, err := h.projects.Update(r.Context(), id, req.input())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		slog.Error("updating project failed", "id", id, "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, ProjectResponse{
		Message: "project updated",
		Project: *project,
	})
}

// DeleteProject handles DELETE /api/projects/{id}. Admin only.
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.projects.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "project not found")
			return
		}
		slog.Error("deleting project failed", "id", id, "error", err)
		writeInternalError(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "project deleted"})
}
