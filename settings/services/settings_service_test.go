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
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/settings/errors"
)

const strongPassword = "tr0ub4dour&3-horse-battery"

func newTestService(t *testing.T) (SettingsService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	t.Cleanup(func() { st.Close() })

	resolver := binder.NewNameResolver(st, nil)
	recorder := audit.NewRecorder(st)
	return NewSettingsService(st, resolver, recorder), st
}

func seedAdmin(t *testing.T, st *store.MemoryStore, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, st.Write(context.Background(), "admins", "admin-1", map[string]interface{}{
		"name":     "Root Admin",
		"email":    "admin@skillswap.example",
		"password": string(hash),
		"role":     "admin",
	}))
}

func TestSettingsService_Profile(t *testing.T) {
	svc, st := newTestService(t)
	seedAdmin(t, st, "old password")
	ctx := context.Background()

	admin, err := svc.Profile(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Root Admin", admin.Name)
	assert.Equal(t, "admin@skillswap.example", admin.Email)

	_, err = svc.Profile(ctx, "ghost")
	assert.ErrorIs(t, err, errors.ErrAdminNotFound)
}

func TestSettingsService_UpdateProfile(t *testing.T) {
	svc, st := newTestService(t)
	seedAdmin(t, st, "old password")
	ctx := context.Background()

	t.Run("updates own record", func(t *testing.T) {
		require.NoError(t, svc.UpdateProfile(ctx, "admin-1", "New Name", "New@SkillSwap.example"))

		doc, err := st.Get(ctx, "admins", "admin-1")
		require.NoError(t, err)
		assert.Equal(t, "New Name", doc.String("name"))
		assert.Equal(t, "new@skillswap.example", doc.String("email"))
		// Password hash untouched by the merge.
		assert.NotEmpty(t, doc.String("password"))
	})

	t.Run("both fields required", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, "admin-1", "", "a@b.c")
		assert.ErrorIs(t, err, errors.ErrValidationFailed)
	})

	t.Run("missing admin", func(t *testing.T) {
		err := svc.UpdateProfile(ctx, "ghost", "Name", "a@b.c")
		assert.ErrorIs(t, err, errors.ErrAdminNotFound)
	})
}

func TestSettingsService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies current password and rehashes", func(t *testing.T) {
		svc, st := newTestService(t)
		seedAdmin(t, st, "old password")

		require.NoError(t, svc.ChangePassword(ctx, "admin-1", "old password", strongPassword))

		doc, err := st.Get(ctx, "admins", "admin-1")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(doc.String("password")), []byte(strongPassword)))
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		svc, st := newTestService(t)
		seedAdmin(t, st, "old password")

		err := svc.ChangePassword(ctx, "admin-1", "not it", strongPassword)
		assert.ErrorIs(t, err, errors.ErrInvalidCurrentPassword)
	})

	t.Run("weak new password is rejected", func(t *testing.T) {
		svc, st := newTestService(t)
		seedAdmin(t, st, "old password")

		err := svc.ChangePassword(ctx, "admin-1", "old password", "abc123")
		assert.ErrorIs(t, err, errors.ErrWeakPassword)

		// The stored hash is unchanged.
		doc, getErr := st.Get(ctx, "admins", "admin-1")
		require.NoError(t, getErr)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(doc.String("password")), []byte("old password")))
	})

	t.Run("both passwords required", func(t *testing.T) {
		svc, st := newTestService(t)
		seedAdmin(t, st, "old password")

		err := svc.ChangePassword(ctx, "admin-1", "", strongPassword)
		assert.ErrorIs(t, err, errors.ErrValidationFailed)
	})
}

func TestSettingsService_AddAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new admin with hashed password", func(t *testing.T) {
		svc, st := newTestService(t)
		seedAdmin(t, st, "old password")

		key, err := svc.AddAdmin(ctx, "admin-1", "Second Admin", "Second@SkillSwap.example", strongPassword)
		require.NoError(t, err)
		require.NotEmpty(t, key)

		doc, err := st.Get(ctx, "admins", key)
		require.NoError(t, err)
		assert.Equal(t, "Second Admin", doc.String("name"))
		assert.Equal(t, "second@skillswap.example", doc.String("email"))
		assert.Equal(t, "admin", doc.String("role"))
		assert.NotEqual(t, strongPassword, doc.String("password"))
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(doc.String("password")), []byte(strongPassword)))

		logs, err := st.Read(ctx, "logs")
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "Admin Added", logs[0].String("action"))
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc, st := newTestService(t)
		seedAdmin(t, st, "old password")

		_, err := svc.AddAdmin(ctx, "admin-1", "Dup", "admin@skillswap.example", strongPassword)
		assert.ErrorIs(t, err, errors.ErrEmailAlreadyRegistered)
	})

	t.Run("weak password is rejected before any write", func(t *testing.T) {
		svc, st := newTestService(t)

		_, err := svc.AddAdmin(ctx, "admin-1", "Weak", "weak@skillswap.example", "password")
		assert.ErrorIs(t, err, errors.ErrWeakPassword)

		admins, readErr := st.Read(ctx, "admins")
		require.NoError(t, readErr)
		assert.Empty(t, admins)
	})

	t.Run("all fields required", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AddAdmin(ctx, "admin-1", "", "a@b.c", strongPassword)
		assert.ErrorIs(t, err, errors.ErrValidationFailed)
	})
}
