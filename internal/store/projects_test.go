// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/olegiv/onav-go/internal/kv"
	"github.com/olegiv/onav-go/internal/model"
)

func testProjects(t *testing.T) (*Projects, kv.Store) {
	t.Helper()
	s := kv.NewMemoryStore()
	t.Cleanup(func() { _ = s.Close() })
	return NewProjects(s), s
}

func TestProjects_ListEmpty(t *testing.T) {
	repo, _ := testProjects(t)

	list, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if list == nil {
		t.Fatal("List returned nil, want empty slice")
	}
	if len(list) != 0 {
		t.Errorf("List returned %d projects, want 0", len(list))
	}
}

func TestProjects_Create(t *testing.T) {
	repo, _ := testProjects(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, ProjectInput{Name: "A", URL: "https://x.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == "" {
		t.Error("Create returned empty ID")
	}
	if created.Description != "" {
		t.Errorf("Description = %q, want empty", created.Description)
	}
	if created.Category != "other" {
		t.Errorf("Category = %q, want %q", created.Category, "other")
	}
	if created.Tags == nil || len(created.Tags) != 0 {
		t.Errorf("Tags = %v, want empty slice", created.Tags)
	}
	if created.CreatedAt.IsZero() || !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("timestamps: createdAt=%v updatedAt=%v, want equal and non-zero",
			created.CreatedAt, created.UpdatedAt)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("List returned %d projects, want 1", len(list))
	}
	if list[0].Name != "A" || list[0].URL != "https://x.com" {
		t.Errorf("stored project = %+v", list[0])
	}
}

func TestProjects_CreateNewestFirst(t *testing.T) {
	repo, _ := testProjects(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, ProjectInput{Name: "first", URL: "https://a.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := repo.Create(ctx, ProjectInput{Name: "second", URL: "https://b.com"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("List returned %d projects, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("list[0] = %q, want the most recent project %q", list[0].Name, second.Name)
	}
	if list[1].ID != first.ID {
		t.Errorf("list[1] = %q, want the older project %q", list[1].Name, first.Name)
	}
}

func TestProjects_Update(t *testing.T) {
	repo, _ := testProjects(t)
	ctx := context.Background()

	_, _ = repo.Create(ctx, ProjectInput{Name: "newer", URL: "https://n.com"})
	target, _ := repo.Create(ctx, ProjectInput{
		Name: "target", URL: "https://t.com",
		Description: "desc", Category: "tools", Tags: []string{"go"},
	})
	// target sits at index 0; create one more above it.
	_, _ = repo.Create(ctx, ProjectInput{Name: "newest", URL: "https://z.com"})

	updated, err := repo.Update(ctx, target.ID, ProjectInput{Name: "renamed", URL: "https://t2.com"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ID != target.ID {
		t.Errorf("ID changed: %q -> %q", target.ID, updated.ID)
	}
	if !updated.CreatedAt.Equal(target.CreatedAt) {
		t.Errorf("CreatedAt changed: %v -> %v", target.CreatedAt, updated.CreatedAt)
	}
	if updated.Name != "renamed" || updated.URL != "https://t2.com" {
		t.Errorf("updated fields = %+v", updated)
	}
	// Omitted optional fields reset to defaults, mirroring create.
	if updated.Description != "" || updated.Category != "other" || len(updated.Tags) != 0 {
		t.Errorf("optional fields not reset: %+v", updated)
	}

	// Update keeps the element's position.
	list, _ := repo.List(ctx)
	if len(list) != 3 || list[1].ID != target.ID {
		t.Errorf("updated project moved; list order: %v", projectIDs(list))
	}
}

func TestProjects_UpdateNotFound(t *testing.T) {
	repo, _ := testProjects(t)
	ctx := context.Background()

	_, _ = repo.Create(ctx, ProjectInput{Name: "A", URL: "https://x.com"})

	_, err := repo.Update(ctx, "no-such-id", ProjectInput{Name: "B", URL: "https://y.com"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrNotFound", err)
	}

	// The stored collection is unchanged.
	list, _ := repo.List(ctx)
	if len(list) != 1 || list[0].Name != "A" {
		t.Errorf("collection changed after failed update: %+v", list)
	}
}

func TestProjects_Delete(t *testing.T) {
	repo, _ := testProjects(t)
	ctx := context.Background()

	created, _ := repo.Create(ctx, ProjectInput{Name: "A", URL: "https://x.com"})

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	list, _ := repo.List(ctx)
	for _, p := range list {
		if p.ID == created.ID {
			t.Errorf("deleted project still listed")
		}
	}

	// Deleting again fails.
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete error = %v, want ErrNotFound", err)
	}
}

func TestProjects_MalformedStoredData(t *testing.T) {
	repo, s := testProjects(t)
	ctx := context.Background()

	// Corrupt value under the projects key degrades to an empty list.
	if err := s.Set(ctx, KeyProjects, []byte("{not json")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("List returned %d projects from corrupt data, want 0", len(list))
	}
}

func TestProjects_ReadsWorkerWrittenData(t *testing.T) {
	repo, s := testProjects(t)
	ctx := context.Background()

	// A value as the original worker would have written it: ISO timestamps,
	// base36 ID, literal category.
	raw := `[{"id":"m5z9k2abc","name":"Legacy","url":"https://legacy.example",
		"description":"","category":"other","tags":["old"],
		"createdAt":"2024-06-01T10:00:00.000Z","updatedAt":"2024-06-01T10:00:00.000Z"}]`
	if err := s.Set(ctx, KeyProjects, []byte(raw)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Legacy" || list[0].Tags[0] != "old" {
		t.Errorf("legacy data misread: %+v", list)
	}
}

func projectIDs(list []model.Project) []string {
	ids := make([]string, len(list))
	for i, p := range list {
		ids[i] = p.ID
	}
	return ids
}
