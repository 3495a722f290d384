// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"github.com/skillswap/admin-api/internal/store"
)

// Notification status and type values
const (
	StatusRead   = "read"
	StatusUnread = "unread"

	TypeAnnouncement = "announcement"
)

// Notification represents one notification record.
type Notification struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Content   string `json:"content,omitempty"`
	Audience  string `json:"audience,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// IsRead reports whether the notification was already read.
func (n Notification) IsRead() bool {
	return n.Status == StatusRead
}

// FromDocument builds a Notification from a stored document.
func FromDocument(doc store.Document) Notification {
	var n Notification
	_ = doc.Decode(&n)
	n.ID = doc.Key
	return n
}
