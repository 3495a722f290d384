// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/notifications/errors"
	"github.com/skillswap/admin-api/notifications/models"
)

const (
	notificationsPath = "notifications"
	usersPath         = "users"
)

// AnnouncementResult reports what the announcement push created.
type AnnouncementResult struct {
	NotificationID string `json:"notification_id"`
	// AudienceKnown is advisory: when the audience names a literal user id,
	// it reports whether that member exists. The push happens either way.
	AudienceKnown bool `json:"audience_known"`
}

// NotificationService defines the interface for notification administration
type NotificationService interface {
	// List derives the visible notifications page from the live snapshot
	List(ctx context.Context, params listview.Params) (*listview.Page[models.Notification], error)

	// MarkRead flips an unread notification to read
	MarkRead(ctx context.Context, notificationID string) error

	// Delete removes a notification record
	Delete(ctx context.Context, notificationID string) error

	// Announce pushes a single system announcement record
	Announce(ctx context.Context, adminID, subject, content, audience string) (*AnnouncementResult, error)
}

// notificationService implements the NotificationService interface
type notificationService struct {
	store    store.Store
	views    *binder.Set
	resolver *binder.NameResolver
	audit    *audit.Recorder
}

// NewNotificationService creates a new instance of the notification service.
// The binder set may be nil, in which case lists read the store directly.
func NewNotificationService(st store.Store, views *binder.Set, resolver *binder.NameResolver, recorder *audit.Recorder) NotificationService {
	return &notificationService{
		store:    st,
		views:    views,
		resolver: resolver,
		audit:    recorder,
	}
}

// List applies search over message, type and resolved user name, the
// read/unread filter, sort and pagination.
func (s *notificationService) List(ctx context.Context, params listview.Params) (*listview.Page[models.Notification], error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	items := make([]models.Notification, 0, len(snapshot))
	userIDs := make([]string, 0, len(snapshot))
	for _, doc := range snapshot {
		n := models.FromDocument(doc)
		items = append(items, n)
		userIDs = append(userIDs, n.UserID)
	}

	names := s.resolver.ResolveNames(ctx, userIDs)

	filtered := make([]models.Notification, 0, len(items))
	for _, n := range items {
		n.UserName = names[n.UserID]
		if !listview.MatchesStatus(params.Status, n.Status) {
			continue
		}
		if !listview.MatchesSearch(params.Search, n.Message, n.UserName, n.Type) {
			continue
		}
		filtered = append(filtered, n)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		cmp := listview.CompareTimestamps(filtered[i].CreatedAt, filtered[j].CreatedAt)
		if strings.EqualFold(params.Sort, "oldest") {
			return cmp < 0
		}
		return cmp > 0
	})

	page := listview.Paginate(filtered, params.Page)
	return &page, nil
}

// MarkRead flips the status to read. Marking twice is a conflict.
func (s *notificationService) MarkRead(ctx context.Context, notificationID string) error {
	doc, err := s.store.Get(ctx, notificationsPath, notificationID)
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrNotificationNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if doc.String("status") == models.StatusRead {
		return errors.ErrAlreadyRead
	}

	if err := s.store.Update(ctx, notificationsPath, notificationID, map[string]interface{}{
		"status": models.StatusRead,
	}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	return nil
}

// Delete removes the notification record.
func (s *notificationService) Delete(ctx context.Context, notificationID string) error {
	if _, err := s.store.Get(ctx, notificationsPath, notificationID); err != nil {
		if err == store.ErrNotFound {
			return errors.ErrNotificationNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Delete(ctx, notificationsPath, notificationID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	return nil
}

// Announce pushes one system announcement record. The audience is advisory
// free text; no per-user fan-out happens.
func (s *notificationService) Announce(ctx context.Context, adminID, subject, content, audience string) (*AnnouncementResult, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("%w: subject is required", errors.ErrValidationFailed)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", errors.ErrValidationFailed)
	}

	audienceKnown := true
	if audience != "" && !strings.EqualFold(audience, "all") && !strings.EqualFold(audience, "reported") {
		if _, err := s.store.Get(ctx, usersPath, audience); err != nil {
			audienceKnown = false
		}
	}

	announcement := map[string]interface{}{
		"type":       models.TypeAnnouncement,
		"message":    subject,
		"content":    content,
		"audience":   audience,
		"user_id":    binder.SystemUserID,
		"status":     models.StatusUnread,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}

	key, err := s.store.Push(ctx, notificationsPath, announcement)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "Announcement Sent", adminID, fmt.Sprintf("Announcement %q was sent.", subject))
	return &AnnouncementResult{NotificationID: key, AudienceKnown: audienceKnown}, nil
}

func (s *notificationService) snapshot(ctx context.Context) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(notificationsPath); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, notificationsPath)
}
