// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/onav-go/internal/kv"
	"github.com/olegiv/onav-go/internal/model"
)

// Categories is the repository for project categories. It shares the
// whole-collection storage discipline of Projects under a separate key.
//
// Deleting a category never touches the project collection: a project
// keeping the deleted category ID simply stops resolving to a display
// name, which the front-end tolerates.
type Categories struct {
	kv kv.Store
	mu sync.Mutex
}

// NewCategories creates a category repository over the given store.
func NewCategories(s kv.Store) *Categories {
	return &Categories{kv: s}
}

// List returns all categories, newest first.
func (c *Categories) List(ctx context.Context) ([]model.Category, error) {
	list, err := loadList[model.Category](ctx, c.kv, KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return list, nil
}

// Create adds a category with the given name.
// Returns ErrConflict if the name is already taken (case-insensitive).
func (c *Categories) Create(ctx context.Context, name string) (*model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := loadList[model.Category](ctx, c.kv, KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	if nameTaken(list, name, "") {
		return nil, ErrConflict
	}

	category := model.Category{
		ID:        model.NewID(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	list = append([]model.Category{category}, list...)

	if err := saveList(ctx, c.kv, KeyCategories, list); err != nil {
		return nil, fmt.Errorf("writing categories: %w", err)
	}

	return &category, nil
}

// Update renames the category with the given ID, preserving its ID,
// position, and creation time.
func (c *Categories) Update(ctx context.Context, id, name string) (*model.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := loadList[model.Category](ctx, c.kv, KeyCategories)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}

	idx := slices.IndexFunc(list, func(cat model.Category) bool { return cat.ID == id })
	if idx < 0 {
		return nil, ErrNotFound
	}

	if nameTaken(list, name, id) {
		return nil, ErrConflict
	}

	list[idx].Name = name

	if err := saveList(ctx, c.kv, KeyCategories, list); err != nil {
		return nil, fmt.Errorf("writing categories: %w", err)
	}

	category := list[idx]
	return &category, nil
}

// Delete removes the category with the given ID.
func (c *Categories) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	list, err := loadList[model.Category](ctx, c.kv, KeyCategories)
	if err != nil {
		return fmt.Errorf("reading categories: %w", err)
	}

	idx := slices.IndexFunc(list, func(cat model.Category) bool { return cat.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	list = slices.Delete(list, idx, idx+1)

	if err := saveList(ctx, c.kv, KeyCategories, list); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	return nil
}

// nameTaken reports whether another category already uses the name.
// excludeID skips the category being renamed.
func nameTaken(list []model.Category, name, excludeID string) bool {
	for _, cat := range list {
		if cat.ID == excludeID {
			continue
		}
		if strings.EqualFold(cat.Name, name) {
			return true
		}
	}
	return false
}
