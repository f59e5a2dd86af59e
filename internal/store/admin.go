// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/olegiv/onav-go/internal/auth"
	"github.com/olegiv/onav-go/internal/kv"
	"github.com/olegiv/onav-go/internal/model"
)

// Admin manages the singleton admin credential record.
type Admin struct {
	kv kv.Store
	mu sync.Mutex
}

// NewAdmin creates an admin credential repository over the given store.
func NewAdmin(s kv.Store) *Admin {
	return &Admin{kv: s}
}

// Get returns the stored admin credential.
// Returns ErrNotConfigured if setup has not run yet.
func (a *Admin) Get(ctx context.Context) (*model.AdminCredential, error) {
	data, err := a.kv.Get(ctx, KeyAdmin)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("reading admin record: %w", err)
	}

	var cred model.AdminCredential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("decoding admin record: %w", err)
	}

	return &cred, nil
}

// Create stores the admin credential, hashing the given password.
// The transition is one-way: once a record exists, Create always fails
// with ErrAlreadyConfigured regardless of the input.
func (a *Admin) Create(ctx context.Context, username, password string) (*model.AdminCredential, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	exists, err := a.kv.Has(ctx, KeyAdmin)
	if err != nil {
		return nil, fmt.Errorf("checking admin record: %w", err)
	}
	if exists {
		return nil, ErrAlreadyConfigured
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	cred := model.AdminCredential{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	data, err := json.Marshal(cred)
	if err != nil {
		return nil, err
	}
	if err := a.kv.Set(ctx, KeyAdmin, data); err != nil {
		return nil, fmt.Errorf("writing admin record: %w", err)
	}

	return &cred, nil
}
