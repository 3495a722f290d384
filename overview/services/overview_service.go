// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/overview/errors"
	"github.com/skillswap/admin-api/overview/models"
)

const (
	usersPath    = "users"
	sessionsPath = "sessions"
	postsPath    = "posts"
	requestsPath = "requests"
)

// weeklyActivityWindow is how many recent sessions feed the activity chart.
const weeklyActivityWindow = 7

// OverviewService defines the interface for the dashboard landing view
type OverviewService interface {
	// Overview assembles the stat cards and both charts
	Overview(ctx context.Context) (*models.Overview, error)
}

// overviewService implements the OverviewService interface
type overviewService struct {
	store store.Store
	views *binder.Set
}

// NewOverviewService creates a new instance of the overview service.
// The binder set may be nil, in which case reads go to the store directly.
func NewOverviewService(st store.Store, views *binder.Set) OverviewService {
	return &overviewService{store: st, views: views}
}

// Overview derives every dashboard figure from the current snapshots.
func (s *overviewService) Overview(ctx context.Context) (*models.Overview, error) {
	users, err := s.snapshot(ctx, usersPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	sessions, err := s.snapshot(ctx, sessionsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	posts, err := s.snapshot(ctx, postsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	requests, err := s.snapshot(ctx, requestsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	return &models.Overview{
		Stats: models.Stats{
			TotalUsers:        len(users),
			CompletedSessions: countByStatus(sessions, "completed"),
			PendingPosts:      countByStatus(posts, "pending"),
			PendingRequests:   countByStatus(requests, "pending"),
		},
		WeeklyActivity: weeklyActivity(sessions),
		AccountGrowth:  accountGrowth(users),
	}, nil
}

func (s *overviewService) snapshot(ctx context.Context, path string) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(path); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, path)
}

func countByStatus(snapshot store.Snapshot, status string) int {
	count := 0
	for _, doc := range snapshot {
		if doc.String("status") == status {
			count++
		}
	}
	return count
}

// weeklyActivity buckets the most recent sessions by weekday, oldest day
// first. Only the last seven session records feed the chart.
func weeklyActivity(sessions store.Snapshot) []models.DayActivity {
	type stamped struct {
		day  string
		when string
	}

	recent := make([]stamped, 0, len(sessions))
	for _, doc := range sessions {
		createdAt := doc.String("created_at")
		t := listview.ParseTimestamp(createdAt)
		if t.IsZero() {
			continue
		}
		recent = append(recent, stamped{day: t.Format("Mon"), when: createdAt})
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return listview.CompareTimestamps(recent[i].when, recent[j].when) < 0
	})
	if len(recent) > weeklyActivityWindow {
		recent = recent[len(recent)-weeklyActivityWindow:]
	}

	activity := make([]models.DayActivity, 0, weeklyActivityWindow)
	for _, session := range recent {
		if n := len(activity); n > 0 && activity[n-1].Day == session.day {
			activity[n-1].Count++
			continue
		}
		activity = append(activity, models.DayActivity{Day: session.day, Count: 1})
	}
	return activity
}

// accountGrowth buckets registrations by calendar month, chronologically.
func accountGrowth(users store.Snapshot) []models.MonthGrowth {
	counts := make(map[string]int)
	order := make(map[string]string)
	for _, doc := range users {
		t := listview.ParseTimestamp(doc.String("created_at"))
		if t.IsZero() {
			continue
		}
		month := t.Format("Jan 2006")
		counts[month]++
		order[month] = t.Format("2006-01")
	}

	growth := make([]models.MonthGrowth, 0, len(counts))
	for month, count := range counts {
		growth = append(growth, models.MonthGrowth{Month: month, Growth: count})
	}
	sort.Slice(growth, func(i, j int) bool {
		return order[growth[i].Month] < order[growth[j].Month]
	})
	return growth
}
