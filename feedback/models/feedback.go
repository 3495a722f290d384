// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"github.com/skillswap/admin-api/internal/store"
)

// Feedback status values
const (
	StatusDone = "done"
)

// Feedback represents one feedback record as surfaced to the dashboard.
// The feedback text is stored under the "feedback" field by the end-user
// platform; rating is a 0-5 score it assigns at submission time.
type Feedback struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	Text      string `json:"feedback"`
	Rating    int    `json:"rating"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// IsApproved reports whether the feedback has already been approved.
func (f Feedback) IsApproved() bool {
	return f.Status == StatusDone
}

// FromDocument builds a Feedback from a stored document. The resolved user
// name is attached separately by the service.
func FromDocument(doc store.Document) Feedback {
	var f Feedback
	_ = doc.Decode(&f)
	f.ID = doc.Key
	return f
}
