// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"github.com/skillswap/admin-api/internal/store"
)

// Report status values
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

// Report represents one user report in the moderation queue. The two party
// ids are stored under reported_by_id and reported_user_id by the platform;
// the display names are resolved at render time.
type Report struct {
	ID             string `json:"id"`
	ReportedByID   string `json:"reported_by_id"`
	ReporterName   string `json:"reporter_name"`
	ReportedUserID string `json:"reported_user_id"`
	ReportedName   string `json:"reported_name"`
	Reason         string `json:"reason"`
	Status         string `json:"status"`
	CreatedAt      string `json:"created_at"`
	ResolvedAt     string `json:"resolved_at,omitempty"`
	ResolvedBy     string `json:"resolved_by,omitempty"`
}

// FromDocument builds a Report from a stored document.
func FromDocument(doc store.Document) Report {
	var r Report
	_ = doc.Decode(&r)
	r.ID = doc.Key
	return r
}
