// Package audit appends administrative actions to the append-only logs
// collection. Audit writes are best-effort: a failed append never rolls back
// the action it describes.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/skillswap/admin-api/internal/pkg/log"
	"github.com/skillswap/admin-api/internal/store"
)

// LogsPath is the collection path for audit entries.
const LogsPath = "logs"

// Entry is one audit record.
type Entry struct {
	Action    string    `json:"action"`
	AdminID   string    `json:"admin_id"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// SecurityEvent captures an authentication-related event for the audit trail.
type SecurityEvent struct {
	EventType string    `json:"event_type"`
	AdminID   string    `json:"admin_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Details   string    `json:"details,omitempty"`
}

// Recorder writes audit entries to the store.
type Recorder struct {
	store store.Store
}

// NewRecorder creates a Recorder over the given store.
func NewRecorder(st store.Store) *Recorder {
	return &Recorder{store: st}
}

// Record appends an audit entry. Failures are logged and swallowed so the
// primary mutation's outcome is never reversed by its audit trail.
func (r *Recorder) Record(ctx context.Context, action, adminID, details string) {
	entry := map[string]interface{}{
		"action":     action,
		"admin_id":   adminID,
		"details":    details,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := r.store.Push(ctx, LogsPath, entry); err != nil {
		log.ErrorWithContext(ctx, "audit: failed to append %q entry: %v", action, err)
	}
}

// LogSecurityEvent writes a structured security event to the process log.
func LogSecurityEvent(event SecurityEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		log.Error("Failed to marshal security event: %v", err)
		return
	}

	log.Info("[AUDIT] %s", string(eventJSON))
}
