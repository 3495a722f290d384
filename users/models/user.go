// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"time"

	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
)

// NewUserWindow is how far back a registration still counts as "new".
const NewUserWindow = 3 * 24 * time.Hour

// User account status values maintained by the platform.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User represents one platform member in the admin views.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	IsNew     bool   `json:"is_new"`
}

// RegisteredWithin reports whether the user registered inside the window
// ending at now. The window boundary is inclusive.
func (u User) RegisteredWithin(window time.Duration, now time.Time) bool {
	created := listview.ParseTimestamp(u.CreatedAt)
	if created.IsZero() {
		return false
	}
	cutoff := now.Add(-window)
	return created.Equal(cutoff) || created.After(cutoff)
}

// FromDocument builds a User from a stored document.
func FromDocument(doc store.Document) User {
	var u User
	_ = doc.Decode(&u)
	u.ID = doc.Key
	return u
}
