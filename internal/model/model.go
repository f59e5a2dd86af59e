// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultCategory is the category assigned to projects created without one.
// Legacy front-ends also store it literally, so it is not a category ID.
const DefaultCategory = "other"

// Project is a bookmarked link shown on the navigation page.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category groups projects for the front-end filter bar.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminCredential is the single admin record stored under the "admin" key.
// It is created once by setup and never updated afterwards.
type AdminCredential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewID generates a collection-unique record ID: the creation time in
// base-36 milliseconds followed by a random suffix. Sorting the time part
// roughly orders IDs by age, which helps when eyeballing stored data.
func NewID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return ts + suffix
}
