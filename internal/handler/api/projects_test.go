// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"
)

func TestListProjects_EmptyAndPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	// No Authorization header: listing is public.
	rec := doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp ProjectsResponse
	decodeResponse(t, rec, &resp)
	if resp.Projects == nil {
		t.Error("projects is null, want empty array")
	}
	if len(resp.Projects) != 0 {
		t.Errorf("projects = %+v, want empty", resp.Projects)
	}
}

func TestCreateProject(t *testing.T) {
	router, _ := newTestRouter(t)
	token := setupAndLogin(t, router)

	t.Run("without token", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/projects", "",
			ProjectRequest{Name: "A", URL: "https://x.com"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/projects", token,
			ProjectRequest{Name: "A"})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/projects", token,
			ProjectRequest{Name: "A", URL: "https://x.com"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		var resp ProjectResponse
		decodeResponse(t, rec, &resp)
		if resp.Project.ID == "" {
			t.Error("created project has empty id")
		}
		if resp.Project.Category != "other" {
			t.Errorf("category = %q, want default %q", resp.Project.Category, "other")
		}
	})

	t.Run("newest first in listing", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/projects", token,
			ProjectRequest{Name: "B", URL: "https://y.com"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d", rec.Code)
		}

		rec = doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
		var resp ProjectsResponse
		decodeResponse(t, rec, &resp)
		if len(resp.Projects) != 2 {
			t.Fatalf("projects = %d, want 2", len(resp.Projects))
		}
		if resp.Projects[0].Name != "B" || resp.Projects[1].Name != "A" {
			t.Errorf("order = [%s, %s], want [B, A]",
				resp.Projects[0].Name, resp.Projects[1].Name)
		}
	})
}

func TestUpdateProject(t *testing.T) {
	router, _ := newTestRouter(t)
	token := setupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", token,
		ProjectRequest{Name: "A", URL: "https://x.com", Tags: []string{"go"}})
	var created ProjectResponse
	decodeResponse(t, rec, &created)

	t.Run("not found", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/projects/no-such-id", token,
			ProjectRequest{Name: "B", URL: "https://y.com"})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("unauthorized", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/projects/"+created.Project.ID, "",
			ProjectRequest{Name: "B", URL: "https://y.com"})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("success preserves id and createdAt", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPut, "/api/projects/"+created.Project.ID, token,
			ProjectRequest{Name: "B", URL: "https://y.com"})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		var resp ProjectResponse
		decodeResponse(t, rec, &resp)
		if resp.Project.ID != created.Project.ID {
			t.Errorf("id changed: %q -> %q", created.Project.ID, resp.Project.ID)
		}
		if !resp.Project.CreatedAt.Equal(created.Project.CreatedAt) {
			t.Errorf("createdAt changed: %v -> %v",
				created.Project.CreatedAt, resp.Project.CreatedAt)
		}
		if resp.Project.Name != "B" || resp.Project.URL != "https://y.com" {
			t.Errorf("fields not updated: %+v", resp.Project)
		}
		// Tags were omitted from the update body and reset to empty.
		if len(resp.Project.Tags) != 0 {
			t.Errorf("tags = %v, want reset to empty", resp.Project.Tags)
		}
	})
}

func TestDeleteProject(t *testing.T) {
	router, _ := newTestRouter(t)
	token := setupAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/projects", token,
		ProjectRequest{Name: "A", URL: "https://x.com"})
	var created ProjectResponse
	decodeResponse(t, rec, &created)

	t.Run("unauthorized", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/projects/"+created.Project.ID, "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("success then gone", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodDelete, "/api/projects/"+created.Project.ID, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, router, http.MethodGet, "/api/projects", "", nil)
		var resp ProjectsResponse
		decodeResponse(t, rec, &resp)
		if len(resp.Projects) != 0 {
			t.Errorf("projects after delete = %+v", resp.Projects)
		}

		// Deleting again is a 404.
		rec = doJSON(t, router, http.MethodDelete, "/api/projects/"+created.Project.ID, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("second delete status = %d, want 404", rec.Code)
		}
	})
}
