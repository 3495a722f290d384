// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	gopass "github.com/nbutton23/zxcvbn-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/admin-api/auth/models"
	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/settings/errors"
)

const adminsPath = "admins"

// minPasswordScore and minPasswordEntropy gate new admin passwords.
const (
	minPasswordScore   = 3
	minPasswordEntropy = 37
)

// SettingsService defines the interface for admin account settings
type SettingsService interface {
	// Profile returns the caller's registry record
	Profile(ctx context.Context, adminID string) (*models.Admin, error)

	// UpdateProfile merge-updates the caller's own name and email
	UpdateProfile(ctx context.Context, adminID, name, email string) error

	// ChangePassword verifies the current password and stores a new hash
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error

	// AddAdmin registers a new administrator
	AddAdmin(ctx context.Context, actorID, name, email, password string) (string, error)
}

// settingsService implements the SettingsService interface
type settingsService struct {
	store    store.Store
	resolver *binder.NameResolver
	audit    *audit.Recorder
}

// NewSettingsService creates a new instance of the settings service.
func NewSettingsService(st store.Store, resolver *binder.NameResolver, recorder *audit.Recorder) SettingsService {
	return &settingsService{
		store:    st,
		resolver: resolver,
		audit:    recorder,
	}
}

// Profile returns the caller's own registry record.
func (s *settingsService) Profile(ctx context.Context, adminID string) (*models.Admin, error) {
	doc, err := s.store.Get(ctx, adminsPath, adminID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, errors.ErrAdminNotFound
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	admin := models.FromDocument(doc)
	return &admin, nil
}

// UpdateProfile merge-updates the caller's own record. Both fields are
// required; the operation never touches another admin's record.
func (s *settingsService) UpdateProfile(ctx context.Context, adminID, name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: name and email are required", errors.ErrValidationFailed)
	}

	err := s.store.Update(ctx, adminsPath, adminID, map[string]interface{}{
		"name":  name,
		"email": strings.TrimSpace(strings.ToLower(email)),
	})
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrAdminNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if s.resolver != nil {
		s.resolver.Invalidate(ctx, adminID)
	}
	return nil
}

// ChangePassword verifies the caller's current password against the stored
// bcrypt hash before accepting the new one.
func (s *settingsService) ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: current and new password are required", errors.ErrValidationFailed)
	}

	doc, err := s.store.Get(ctx, adminsPath, adminID)
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrAdminNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	storedHash := doc.String("password")
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(currentPassword)); err != nil {
		return errors.ErrInvalidCurrentPassword
	}

	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Update(ctx, adminsPath, adminID, map[string]interface{}{
		"password": string(newHash),
	}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	audit.LogSecurityEvent(audit.SecurityEvent{
		EventType: "password_change",
		AdminID:   adminID,
		Success:   true,
	})
	return nil
}

// AddAdmin registers a new administrator. The email must be unused and the
// password must pass the strength gate before it is stored bcrypt-hashed.
func (s *settingsService) AddAdmin(ctx context.Context, actorID, name, email, password string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(strings.ToLower(email))
	if name == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: name, email and password are required", errors.ErrValidationFailed)
	}

	if err := checkPasswordStrength(password); err != nil {
		return "", err
	}

	existing, err := s.store.Query(ctx, adminsPath, "email", email)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	if len(existing) > 0 {
		return "", errors.ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	key, err := s.store.Push(ctx, adminsPath, map[string]interface{}{
		"name":       name,
		"email":      email,
		"password":   string(hash),
		"role":       models.RoleAdmin,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "Admin Added", actorID, fmt.Sprintf("%s was added as an administrator.", email))
	return key, nil
}

func checkPasswordStrength(password string) error {
	strength := gopass.PasswordStrength(password, nil)
	if strength.Score < minPasswordScore || strength.Entropy < minPasswordEntropy {
		return errors.ErrWeakPassword
	}
	return nil
}
