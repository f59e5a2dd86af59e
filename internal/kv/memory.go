// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryStore is a thread-safe in-memory Store implementation.
// It is the default backend for development and tests; data does not
// survive a restart.
type MemoryStore struct {
	data   sync.Map
	closed atomic.Bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get retrieves the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	val, ok := s.data.Load(key)
	if !ok {
		return nil, ErrNotFound
	}

	// Return a copy to prevent mutation of stored data.
	stored := val.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	s.data.Store(key, valueCopy)
	return nil
}

// Delete removes a key from the store.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if s.closed.Load() {
		return ErrStoreClosed
	}

	s.data.Delete(key)
	return nil
}

// Has checks whether a key exists.
func (s *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	if s.closed.Load() {
		return false, ErrStoreClosed
	}

	_, ok := s.data.Load(key)
	return ok, nil
}

// Close marks the store as closed. Further operations return ErrStoreClosed.
func (s *MemoryStore) Close() error {
	s.closed.Store(true)
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
