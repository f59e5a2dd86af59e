// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/olegiv/onav-go/internal/kv"
	"github.com/olegiv/onav-go/internal/model"
)

// ProjectInput carries the caller-supplied fields for create and update.
// Optional fields left empty fall back to the documented defaults on both
// operations: description "", category "other", tags [].
type ProjectInput struct {
	Name        string
	URL         string
	Description string
	Category    string
	Tags        []string
}

// Projects is the repository for the navigation-site project list.
type Projects struct {
	kv kv.Store
	mu sync.Mutex
}

// NewProjects creates a project repository over the given store.
func NewProjects(s kv.Store) *Projects {
	return &Projects{kv: s}
}

// List returns all projects, newest first. An absent collection is empty,
// not an error.
func (p *Projects) List(ctx context.Context) ([]model.Project, error) {
	list, err := loadList[model.Project](ctx, p.kv, KeyProjects)
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}
	return list, nil
}

// Create generates an ID, applies defaults, and prepends the new project.
// Newest-first ordering is a display contract: the front page shows the
// most recently added link first.
func (p *Projects) Create(ctx context.Context, in ProjectInput) (*model.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, err := loadList[model.Project](ctx, p.kv, KeyProjects)
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}

	now := time.Now().UTC()
	project := model.Project{
		ID:          model.NewID(),
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
		Category:    in.Category,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyProjectDefaults(&project)

	list = append([]model.Project{project}, list...)

	if err := saveList(ctx, p.kv, KeyProjects, list); err != nil {
		return nil, fmt.Errorf("writing projects: %w", err)
	}

	return &project, nil
}

// Update replaces the fields of the project with the given ID, keeping its
// position in the list, its ID, and its creation time.
func (p *Projects) Update(ctx context.Context, id string, in ProjectInput) (*model.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, err := loadList[model.Project](ctx, p.kv, KeyProjects)
	if err != nil {
		return nil, fmt.Errorf("reading projects: %w", err)
	}

	idx := slices.IndexFunc(list, func(pr model.Project) bool { return pr.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	project := list[idx]
	project.Name = in.Name
	project.URL = in.URL
	project.Description = in.Description
	project.Category = in.Category
	project.Tags = in.Tags
	project.UpdatedAt = time.Now().UTC()
	applyProjectDefaults(&project)

	list[idx] = project

	if err := saveList(ctx, p.kv, KeyProjects, list); err != nil {
		return nil, fmt.Errorf("writing projects: %w", err)
	}

	return &project, nil
}

// Delete removes the project with the given ID.
func (p *Projects) Delete(ctx context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	list, err := loadList[model.Project](ctx, p.kv, KeyProjects)
	if err != nil {
		return fmt.Errorf("reading projects: %w", err)
	}

	idx := slices.IndexFunc(list, func(pr model.Project) bool { return pr.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	list = slices.Delete(list, idx, idx+1)

	if err := saveList(ctx, p.kv, KeyProjects, list); err != nil {
		return fmt.Errorf("writing projects: %w", err)
	}

	return nil
}

// applyProjectDefaults fills the optional fields the same way on create
// and update; an update that omits them resets to defaults.
func applyProjectDefaults(p *model.Project) {
	if p.Category == "" {
		p.Category = model.DefaultCategory
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}
