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

	"github.com/skillswap/admin-api/feedback/errors"
	"github.com/skillswap/admin-api/feedback/models"
	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
)

const (
	feedbackPath      = "feedback"
	notificationsPath = "notifications"
)

// FeedbackService defines the interface for feedback moderation
type FeedbackService interface {
	// List derives the visible feedback page from the live snapshot
	List(ctx context.Context, params listview.Params) (*listview.Page[models.Feedback], error)

	// Approve marks a feedback record done and notifies its author
	Approve(ctx context.Context, feedbackID, adminID string) error

	// Delete removes a feedback record
	Delete(ctx context.Context, feedbackID, adminID string) error
}

// feedbackService implements the FeedbackService interface
type feedbackService struct {
	store    store.Store
	views    *binder.Set
	resolver *binder.NameResolver
	audit    *audit.Recorder
}

// NewFeedbackService creates a new instance of the feedback service.
// The binder set may be nil, in which case lists read the store directly.
func NewFeedbackService(st store.Store, views *binder.Set, resolver *binder.NameResolver, recorder *audit.Recorder) FeedbackService {
	return &feedbackService{
		store:    st,
		views:    views,
		resolver: resolver,
		audit:    recorder,
	}
}

// List applies search, status filter, sort and pagination over the feedback
// snapshot. The status filter maps Approved to done and Pending to not-done.
func (s *feedbackService) List(ctx context.Context, params listview.Params) (*listview.Page[models.Feedback], error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	items := make([]models.Feedback, 0, len(snapshot))
	userIDs := make([]string, 0, len(snapshot))
	for _, doc := range snapshot {
		f := models.FromDocument(doc)
		items = append(items, f)
		userIDs = append(userIDs, f.UserID)
	}

	names := s.resolver.ResolveNames(ctx, userIDs)
	for i := range items {
		items[i].UserName = names[items[i].UserID]
	}

	filtered := make([]models.Feedback, 0, len(items))
	for _, f := range items {
		if !matchesApprovalFilter(params.Status, f.Status) {
			continue
		}
		if !listview.MatchesSearch(params.Search, f.Text, f.UserName) {
			continue
		}
		filtered = append(filtered, f)
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

// Approve sets the feedback status to done, pushes an unread notification to
// the author and appends an audit entry. Approving twice is a conflict.
func (s *feedbackService) Approve(ctx context.Context, feedbackID, adminID string) error {
	doc, err := s.store.Get(ctx, feedbackPath, feedbackID)
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrFeedbackNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if doc.String("status") == models.StatusDone {
		return errors.ErrAlreadyApproved
	}

	if err := s.store.Update(ctx, feedbackPath, feedbackID, map[string]interface{}{
		"status": models.StatusDone,
	}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	userID := doc.String("user_id")
	notification := map[string]interface{}{
		"user_id":    userID,
		"message":    "Your feedback has been approved!",
		"type":       "feedback",
		"status":     "unread",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if _, err := s.store.Push(ctx, notificationsPath, notification); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "Feedback Approved", adminID, fmt.Sprintf("%s's feedback was approved.", userID))
	return nil
}

// Delete removes the feedback record and appends an audit entry.
func (s *feedbackService) Delete(ctx context.Context, feedbackID, adminID string) error {
	doc, err := s.store.Get(ctx, feedbackPath, feedbackID)
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrFeedbackNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Delete(ctx, feedbackPath, feedbackID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "Feedback Deleted", adminID, fmt.Sprintf("%s's feedback was deleted.", doc.String("user_id")))
	return nil
}

func (s *feedbackService) snapshot(ctx context.Context) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(feedbackPath); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, feedbackPath)
}

// matchesApprovalFilter maps the dashboard's Approved/Pending filter onto the
// stored status value. The All sentinel passes everything.
func matchesApprovalFilter(filter, status string) bool {
	switch {
	case listview.IsAll(filter):
		return true
	case strings.EqualFold(filter, "approved"):
		return status == models.StatusDone
	case strings.EqualFold(filter, "pending"):
		return status != models.StatusDone
	default:
		return strings.EqualFold(filter, status)
	}
}
