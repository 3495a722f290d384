// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/reports/errors"
)

func newTestService(t *testing.T) (ReportService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	resolver := binder.NewNameResolver(st, nil)
	recorder := audit.NewRecorder(st)
	return NewReportService(st, nil, resolver, recorder), st
}

func seedReports(t *testing.T, st *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, st.Write(ctx, "users", "u1", map[string]interface{}{"name": "Alice"}))
	require.NoError(t, st.Write(ctx, "users", "u2", map[string]interface{}{"name": "Bob"}))

	require.NoError(t, st.Write(ctx, "reports", "r1", map[string]interface{}{
		"reported_by_id":   "u1",
		"reported_user_id": "u2",
		"reason":           "Spam in chat",
		"status":           "pending",
		"created_at":       "2026-02-01T09:00:00Z",
	}))
	require.NoError(t, st.Write(ctx, "reports", "r2", map[string]interface{}{
		"reported_by_id":   "u2",
		"reported_user_id": "u1",
		"reason":           "Abusive language",
		"status":           "resolved",
		"created_at":       "2026-02-02T09:00:00Z",
	}))
}

func TestReportService_List(t *testing.T) {
	svc, st := newTestService(t)
	seedReports(t, st)
	ctx := context.Background()

	t.Run("resolves both party names", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Page: 1})
		require.NoError(t, err)

		require.Len(t, page.Items, 2)
		assert.Equal(t, "r2", page.Items[0].ID)
		assert.Equal(t, "u2", page.Items[0].ReportedByID)
		assert.Equal(t, "u1", page.Items[0].ReportedUserID)
		assert.Equal(t, "Bob", page.Items[0].ReporterName)
		assert.Equal(t, "Alice", page.Items[0].ReportedName)
	})

	t.Run("status filter", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Status: "pending", Page: 1})
		require.NoError(t, err)

		require.Len(t, page.Items, 1)
		assert.Equal(t, "r1", page.Items[0].ID)
	})

	t.Run("search covers reason and names", func(t *testing.T) {
		page, err := svc.List(ctx, listview.Params{Search: "spam", Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "r1", page.Items[0].ID)
	})
}

func TestReportService_Warn(t *testing.T) {
	ctx := context.Background()

	t.Run("appends message and notification then resolves", func(t *testing.T) {
		svc, st := newTestService(t)
		seedReports(t, st)

		require.NoError(t, svc.Warn(ctx, "r1", "admin-1", "Stop spamming."))

		messages, err := st.Read(ctx, "messages")
		require.NoError(t, err)
		require.Len(t, messages, 1)
		assert.Equal(t, "Stop spamming.", messages[0].String("message"))
		assert.Equal(t, "admin-1", messages[0].String("sender_id"))
		assert.Equal(t, "u2", messages[0].String("receiver_id"))
		assert.Equal(t, "sent", messages[0].String("status"))

		notifications, err := st.Read(ctx, "notifications")
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, "warning", notifications[0].String("type"))
		assert.Equal(t, "unread", notifications[0].String("status"))
		assert.Equal(t, "u2", notifications[0].String("user_id"))

		report, err := st.Get(ctx, "reports", "r1")
		require.NoError(t, err)
		assert.Equal(t, "resolved", report.String("status"))
		assert.Equal(t, "admin-1", report.String("resolved_by"))
		assert.NotEmpty(t, report.String("resolved_at"))
	})

	t.Run("message is required", func(t *testing.T) {
		svc, st := newTestService(t)
		seedReports(t, st)

		err := svc.Warn(ctx, "r1", "admin-1", "   ")
		assert.ErrorIs(t, err, errors.ErrValidationFailed)

		report, getErr := st.Get(ctx, "reports", "r1")
		require.NoError(t, getErr)
		assert.Equal(t, "pending", report.String("status"))
	})

	t.Run("failed first append leaves report untouched", func(t *testing.T) {
		svc, st := newTestService(t)
		seedReports(t, st)

		st.FailNext = true
		err := svc.Warn(ctx, "r1", "admin-1", "Stop spamming.")
		assert.ErrorIs(t, err, errors.ErrDatabaseOperation)

		report, getErr := st.Get(ctx, "reports", "r1")
		require.NoError(t, getErr)
		assert.Equal(t, "pending", report.String("status"))

		notifications, readErr := st.Read(ctx, "notifications")
		require.NoError(t, readErr)
		assert.Empty(t, notifications)
	})

	t.Run("failed second append aborts the resolve", func(t *testing.T) {
		svc, st := newTestService(t)
		seedReports(t, st)

		st.FailAfter = 2
		err := svc.Warn(ctx, "r1", "admin-1", "Stop spamming.")
		assert.ErrorIs(t, err, errors.ErrDatabaseOperation)

		// The direct message went through but the report stays pending.
		messages, readErr := st.Read(ctx, "messages")
		require.NoError(t, readErr)
		assert.Len(t, messages, 1)

		report, getErr := st.Get(ctx, "reports", "r1")
		require.NoError(t, getErr)
		assert.Equal(t, "pending", report.String("status"))
	})

	t.Run("missing report", func(t *testing.T) {
		svc, _ := newTestService(t)
		err := svc.Warn(ctx, "nope", "admin-1", "hello")
		assert.ErrorIs(t, err, errors.ErrReportNotFound)
	})
}

func TestReportService_Ignore(t *testing.T) {
	svc, st := newTestService(t)
	seedReports(t, st)
	ctx := context.Background()

	require.NoError(t, svc.Ignore(ctx, "r1", "admin-1"))

	_, err := st.Get(ctx, "reports", "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	logs, err := st.Read(ctx, "logs")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Report Ignored", logs[0].String("action"))

	err = svc.Ignore(ctx, "r1", "admin-1")
	assert.ErrorIs(t, err, errors.ErrReportNotFound)
}
