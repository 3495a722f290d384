// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"github.com/skillswap/admin-api/internal/store"
)

// Post status values
const (
	StatusPending = "pending"
)

// Post represents one skill post awaiting moderation. Content and the
// optional image are written by the end-user platform.
type Post struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Content   string `json:"content"`
	Image     string `json:"image,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// FromDocument builds a Post from a stored document.
func FromDocument(doc store.Document) Post {
	var p Post
	_ = doc.Decode(&p)
	p.ID = doc.Key
	return p
}
