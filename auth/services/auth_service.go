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

	"golang.org/x/crypto/bcrypt"

	"github.com/skillswap/admin-api/auth/errors"
	"github.com/skillswap/admin-api/auth/models"
	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/auth/tokens"
	"github.com/skillswap/admin-api/internal/cache"
	"github.com/skillswap/admin-api/internal/pkg/log"
	platformconfig "github.com/skillswap/admin-api/internal/platform/config"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/internal/types"
)

const adminsPath = "admins"

// LoginResult carries the issued session token and the authenticated admin.
type LoginResult struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

// AuthService defines the interface for the session gate
type AuthService interface {
	// Login verifies credentials and issues an ES256 session token
	Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error)

	// Logout removes the session id from the allowlist
	Logout(ctx context.Context, admin types.AdminContext) error

	// AdminExists reports whether the admin id is still in the registry
	AdminExists(ctx context.Context, adminID string) (bool, error)
}

// authService implements the AuthService interface
type authService struct {
	store     store.Store
	jwtConfig platformconfig.JWTConfig
	sessions  *cache.GenericCacheService
}

// NewAuthService creates a new instance of the auth service.
// The cache service may be nil or disabled, which skips session allowlisting.
func NewAuthService(st store.Store, jwtConfig platformconfig.JWTConfig, sessions *cache.GenericCacheService) AuthService {
	var sessionCache *cache.GenericCacheService
	if sessions != nil && sessions.IsEnabled() {
		sessionCache = sessions
	}
	return &authService{
		store:     st,
		jwtConfig: jwtConfig,
		sessions:  sessionCache,
	}
}

// Login looks up the administrator registry by email and verifies the bcrypt
// hash. Unknown email and wrong password both return ErrInvalidCredentials
// with no distinction.
func (s *authService) Login(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", errors.ErrValidationFailed)
	}

	matches, err := s.store.Query(ctx, adminsPath, "email", email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	if len(matches) == 0 {
		s.recordLoginEvent(email, "", clientIP, false, "unknown email")
		return nil, errors.ErrInvalidCredentials
	}

	doc := matches[0]
	hash := doc.String("password")
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		s.recordLoginEvent(email, doc.Key, clientIP, false, "password mismatch")
		return nil, errors.ErrInvalidCredentials
	}

	admin := models.FromDocument(doc)
	adminCtx := types.AdminContext{
		ID:    admin.ID,
		Email: admin.Email,
		Name:  admin.Name,
		Role:  admin.Role,
	}

	token, sessionID, err := tokens.CreateSessionToken(s.jwtConfig.PrivateKey, s.jwtConfig.KeyID, adminCtx, s.jwtConfig.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrTokenCreation, err)
	}

	if s.sessions != nil {
		key := s.sessionSetKey(admin.ID)
		if err := s.sessions.SetAdd(ctx, key, sessionID); err != nil {
			// A token that cannot be allowlisted would be rejected by the
			// fail-closed middleware on its first use.
			return nil, fmt.Errorf("%w: session registration failed: %v", errors.ErrDatabaseOperation, err)
		}
	}

	s.recordLoginEvent(email, admin.ID, clientIP, true, "")
	return &LoginResult{Token: token, Admin: admin}, nil
}

// Logout removes the caller's session id from the allowlist, invalidating
// the token immediately.
func (s *authService) Logout(ctx context.Context, admin types.AdminContext) error {
	if s.sessions != nil && admin.SessionID != "" {
		key := s.sessionSetKey(admin.ID)
		if err := s.sessions.SetRemove(ctx, key, admin.SessionID); err != nil {
			return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
		}
	}

	audit.LogSecurityEvent(audit.SecurityEvent{
		EventType: "logout",
		AdminID:   admin.ID,
		Email:     admin.Email,
		Success:   true,
	})
	return nil
}

// AdminExists is the registry re-check used by the JWT middleware.
func (s *authService) AdminExists(ctx context.Context, adminID string) (bool, error) {
	_, err := s.store.Get(ctx, adminsPath, adminID)
	if err == store.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *authService) sessionSetKey(adminID string) string {
	return s.sessions.GenerateHashKey("sessions", map[string]interface{}{"uid": adminID})
}

func (s *authService) recordLoginEvent(email, adminID, clientIP string, success bool, details string) {
	audit.LogSecurityEvent(audit.SecurityEvent{
		EventType: "login",
		AdminID:   adminID,
		Email:     email,
		IP:        clientIP,
		Success:   success,
		Timestamp: time.Now().UTC(),
		Details:   details,
	})
	if !success {
		log.Warn("failed login attempt for %s from %s", email, clientIP)
	}
}
