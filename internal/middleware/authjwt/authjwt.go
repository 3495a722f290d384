// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package authjwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/skillswap/admin-api/internal/cache"
	"github.com/skillswap/admin-api/internal/pkg/log"
	"github.com/skillswap/admin-api/internal/types"
)

// RegistryChecker reports whether an admin id is present in the
// administrator registry. The middleware fails closed: an error or a
// missing record both deny the request.
type RegistryChecker func(ctx context.Context, adminID string) (bool, error)

// Config defines the config for the JWT middleware.
type Config struct {
	// The EC public key for validating ES256 tokens.
	PublicKey string
	// The claim key where the AdminContext is stored.
	ClaimKey string
	// The context key to store the AdminContext.
	AdminCtxName string
	// Optional cache service for session allowlisting.
	CacheService *cache.GenericCacheService
	// Registry re-checks the admin record on every request.
	Registry RegistryChecker
}

// New creates a new middleware handler.
func New(cfg Config) fiber.Handler {
	// Parse the key once on startup.
	ecPublicKey, err := jwt.ParseECPublicKeyFromPEM([]byte(cfg.PublicKey))
	if err != nil {
		panic(fmt.Sprintf("failed to parse EC public key: %v", err))
	}

	if cfg.ClaimKey == "" {
		cfg.ClaimKey = types.ClaimKey
	}
	if cfg.AdminCtxName == "" {
		cfg.AdminCtxName = types.AdminCtxName
	}

	var sessionCache *cache.GenericCacheService
	if cfg.CacheService != nil && cfg.CacheService.IsEnabled() {
		sessionCache = cfg.CacheService
	}

	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return unauthorized(c, "Missing or invalid JWT")
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			// Enforce the expected signing algorithm.
			if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return ecPublicKey, nil
		})
		if err != nil {
			return unauthorized(c, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			return unauthorized(c, "Invalid token")
		}

		if exp, ok := claims["exp"].(float64); ok {
			if int64(exp) < time.Now().Unix() {
				return unauthorized(c, "Token has expired")
			}
		}

		claimData, claimOk := claims[cfg.ClaimKey].(map[string]interface{})
		if !claimOk {
			return unauthorized(c, "Invalid token claim format")
		}

		adminCtx, err := mapToAdminContext(claimData)
		if err != nil {
			return unauthorized(c, "Invalid admin context in token")
		}

		if jti, ok := claims["jti"].(string); ok {
			adminCtx.SessionID = jti
		}

		// Session allowlist check. Fail-closed on cache errors.
		if sessionCache != nil {
			if adminCtx.SessionID == "" {
				return unauthorized(c, "Missing session ID")
			}
			key := sessionCache.GenerateHashKey("sessions", map[string]interface{}{"uid": adminCtx.ID})
			isMember, err := sessionCache.SetIsMember(context.Background(), key, adminCtx.SessionID)
			if err != nil {
				log.Warn("CRITICAL: session check failed for admin %s: %v", adminCtx.ID, err)
				return unauthorized(c, "Session validation failed. Please log in again.")
			}
			if !isMember {
				return unauthorized(c, "Session has been invalidated.")
			}
		}

		// The administrator registry is re-checked on every request so a
		// removed admin loses access immediately. Fail-closed.
		if cfg.Registry != nil {
			exists, err := cfg.Registry(c.UserContext(), adminCtx.ID)
			if err != nil {
				log.Warn("CRITICAL: admin registry check failed for %s: %v", adminCtx.ID, err)
				return unauthorized(c, "Session validation failed. Please log in again.")
			}
			if !exists {
				return unauthorized(c, "Administrator account no longer exists.")
			}
		}

		c.Locals(cfg.AdminCtxName, adminCtx)
		return c.Next()
	}
}

// FromContext retrieves the authenticated admin from the request.
func FromContext(c *fiber.Ctx) (types.AdminContext, bool) {
	adminCtx, ok := c.Locals(types.AdminCtxName).(types.AdminContext)
	return adminCtx, ok
}

// extractToken reads the token from the Authorization header or the
// access_token cookie.
func extractToken(c *fiber.Ctx) string {
	authHeader := c.Get(types.HeaderAuthorization)
	if authHeader != "" && strings.HasPrefix(authHeader, types.BearerPrefix) {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 {
			return parts[1]
		}
	}
	return c.Cookies("access_token")
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"code":    "UNAUTHORIZED",
		"message": message,
	})
}

// mapToAdminContext converts claim data to AdminContext
func mapToAdminContext(claimData map[string]interface{}) (types.AdminContext, error) {
	var adminCtx types.AdminContext

	id, ok := claimData[types.HeaderUID].(string)
	if !ok || id == "" {
		return adminCtx, errors.New("missing or invalid uid in claim")
	}
	adminCtx.ID = id

	if email, ok := claimData["email"].(string); ok {
		adminCtx.Email = email
	}
	if name, ok := claimData["name"].(string); ok {
		adminCtx.Name = name
	}
	if role, ok := claimData["role"].(string); ok {
		adminCtx.Role = role
	}

	return adminCtx, nil
}
