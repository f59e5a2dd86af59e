// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the repositories for oNav's persisted state.
//
// Each collection is stored whole: one key-value entry holds the entire
// serialized list, and every mutation is a read-modify-write of that value.
// A per-repository mutex serializes mutations within the process; concurrent
// writers in separate processes can still clobber each other, which the
// single-admin deployment model accepts.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/olegiv/onav-go/internal/kv"
)

// Storage keys. Fixed layout, no schema versioning; values written by the
// original worker deployment are read as-is.
const (
	KeyAdmin      = "admin"
	KeyProjects   = "projects"
	KeyCategories = "categories"
)

var (
	// ErrNotFound indicates the targeted record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict indicates a uniqueness violation (duplicate category name).
	ErrConflict = errors.New("name already in use")

	// ErrAlreadyConfigured indicates the one-shot admin setup already ran.
	ErrAlreadyConfigured = errors.New("admin already configured")

	// ErrNotConfigured indicates no admin credential exists yet.
	ErrNotConfigured = errors.New("admin not configured")
)

// loadList reads and deserializes a whole-collection value.
// An absent key is a valid empty collection. Malformed stored JSON is
// logged and treated as empty rather than failing the request.
func loadList[T any](ctx context.Context, s kv.Store, key string) ([]T, error) {
	data, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return []T{}, nil
		}
		return nil, err
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		slog.Warn("malformed stored collection, treating as empty", "key", key, "error", err)
		return []T{}, nil
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// saveList serializes and writes back a whole-collection value.
func saveList[T any](ctx context.Context, s kv.Store, key string, list []T) error {
	data, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, data)
}
