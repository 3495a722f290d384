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
	"github.com/skillswap/admin-api/reports/errors"
	"github.com/skillswap/admin-api/reports/models"
)

const (
	reportsPath       = "reports"
	messagesPath      = "messages"
	notificationsPath = "notifications"
)

// ReportService defines the interface for report moderation
type ReportService interface {
	// List derives the visible reports page from the live snapshot
	List(ctx context.Context, params listview.Params) (*listview.Page[models.Report], error)

	// Warn sends a warning to the reported user and resolves the report
	Warn(ctx context.Context, reportID, adminID, message string) error

	// Ignore dismisses the report without action
	Ignore(ctx context.Context, reportID, adminID string) error
}

// reportService implements the ReportService interface
type reportService struct {
	store    store.Store
	views    *binder.Set
	resolver *binder.NameResolver
	audit    *audit.Recorder
}

// NewReportService creates a new instance of the report service.
// The binder set may be nil, in which case lists read the store directly.
func NewReportService(st store.Store, views *binder.Set, resolver *binder.NameResolver, recorder *audit.Recorder) ReportService {
	return &reportService{
		store:    st,
		views:    views,
		resolver: resolver,
		audit:    recorder,
	}
}

// List resolves both party names and applies search, status filter, sort
// and pagination.
func (s *reportService) List(ctx context.Context, params listview.Params) (*listview.Page[models.Report], error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	items := make([]models.Report, 0, len(snapshot))
	userIDs := make([]string, 0, 2*len(snapshot))
	for _, doc := range snapshot {
		r := models.FromDocument(doc)
		items = append(items, r)
		userIDs = append(userIDs, r.ReportedByID, r.ReportedUserID)
	}

	names := s.resolver.ResolveNames(ctx, userIDs)

	filtered := make([]models.Report, 0, len(items))
	for _, r := range items {
		r.ReporterName = names[r.ReportedByID]
		r.ReportedName = names[r.ReportedUserID]
		if !listview.MatchesStatus(params.Status, r.Status) {
			continue
		}
		if !listview.MatchesSearch(params.Search, r.Reason, r.ReporterName, r.ReportedName) {
			continue
		}
		filtered = append(filtered, r)
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

// Warn delivers the warning to the reported user as a direct message plus an
// unread notification. The report flips to resolved only after BOTH appends
// succeed; a failed append leaves the report untouched.
func (s *reportService) Warn(ctx context.Context, reportID, adminID, message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("%w: warning message is required", errors.ErrValidationFailed)
	}

	doc, err := s.store.Get(ctx, reportsPath, reportID)
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrReportNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	reportedID := doc.String("reported_user_id")
	now := time.Now().UTC().Format(time.RFC3339)

	directMessage := map[string]interface{}{
		"message":     message,
		"sender_id":   adminID,
		"receiver_id": reportedID,
		"status":      "sent",
		"created_at":  now,
	}
	if _, err := s.store.Push(ctx, messagesPath, directMessage); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	notification := map[string]interface{}{
		"message":    message,
		"user_id":    reportedID,
		"type":       "warning",
		"status":     "unread",
		"created_at": now,
	}
	if _, err := s.store.Push(ctx, notificationsPath, notification); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Update(ctx, reportsPath, reportID, map[string]interface{}{
		"status":      models.StatusResolved,
		"resolved_at": now,
		"resolved_by": adminID,
	}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "User Warned", adminID, fmt.Sprintf("%s was warned over report %s.", reportedID, reportID))
	return nil
}

// Ignore dismisses the report by deleting it.
func (s *reportService) Ignore(ctx context.Context, reportID, adminID string) error {
	if _, err := s.store.Get(ctx, reportsPath, reportID); err != nil {
		if err == store.ErrNotFound {
			return errors.ErrReportNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Delete(ctx, reportsPath, reportID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "Report Ignored", adminID, fmt.Sprintf("Report %s was dismissed.", reportID))
	return nil
}

func (s *reportService) snapshot(ctx context.Context) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(reportsPath); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, reportsPath)
}
