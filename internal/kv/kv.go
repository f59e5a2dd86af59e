// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package kv provides the key-value persistence layer for oNav.
// All application state lives under a handful of string keys holding
// opaque JSON values; implementations must be safe for concurrent use.
package kv

import "context"

// Store defines the interface for key-value backends.
// Values are opaque byte slices; keys never expire.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns ErrNotFound if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the store.
	Close() error
}

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrNotFound indicates the key does not exist in the store.
	ErrNotFound Error = "key not found"

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed Error = "store closed"
)
