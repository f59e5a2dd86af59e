// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package kv

// StoreConfig holds configuration for store creation.
type StoreConfig struct {
	// RedisURL is the Redis connection URL. When set, a Redis store is
	// created; otherwise an in-memory store is used.
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string
}

// NewStore creates a store based on the provided configuration.
func NewStore(cfg StoreConfig) (Store, error) {
	if cfg.RedisURL != "" {
		return NewRedisStoreFromURL(cfg.RedisURL, cfg.Prefix)
	}
	return NewMemoryStore(), nil
}
