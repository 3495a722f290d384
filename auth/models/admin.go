// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"github.com/skillswap/admin-api/internal/store"
)

// RoleAdmin is the only role issued by this service.
const RoleAdmin = "admin"

// Admin represents one administrator registry record. The password hash
// stays in the raw document and is never serialized.
type Admin struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

// FromDocument builds an Admin from a stored registry document.
func FromDocument(doc store.Document) Admin {
	var a Admin
	_ = doc.Decode(&a)
	a.ID = doc.Key
	if a.Role == "" {
		a.Role = RoleAdmin
	}
	return a
}
