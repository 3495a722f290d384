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

	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/users/errors"
	"github.com/skillswap/admin-api/users/models"
)

const usersPath = "users"

// maxNewUserCards caps the highlighted new-member cards in the list response.
const maxNewUserCards = 4

// UserListPage is the users view response: the derived page plus the
// newest member and the capped new-member highlights.
type UserListPage struct {
	listview.Page[models.User]
	NewestUser *models.User  `json:"newestUser,omitempty"`
	NewUsers   []models.User `json:"newUsers"`
}

// UserService defines the interface for member administration
type UserService interface {
	// List derives the visible members page from the live snapshot
	List(ctx context.Context, params listview.Params) (*UserListPage, error)

	// Update merge-updates a member's name and email
	Update(ctx context.Context, userID, name, email string) error

	// Delete removes a member record
	Delete(ctx context.Context, userID string) error
}

// userService implements the UserService interface
type userService struct {
	store    store.Store
	views    *binder.Set
	resolver *binder.NameResolver
	now      func() time.Time
}

// NewUserService creates a new instance of the user service.
// The binder set may be nil, in which case lists read the store directly.
func NewUserService(st store.Store, views *binder.Set, resolver *binder.NameResolver) UserService {
	return &userService{
		store:    st,
		views:    views,
		resolver: resolver,
		now:      time.Now,
	}
}

// List applies the new/old filter, name+email search, sorting and pagination.
// "New" means registered within the last three days, boundary inclusive.
func (s *userService) List(ctx context.Context, params listview.Params) (*UserListPage, error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	now := s.now()
	users := make([]models.User, 0, len(snapshot))
	for _, doc := range snapshot {
		u := models.FromDocument(doc)
		u.IsNew = u.RegisteredWithin(models.NewUserWindow, now)
		users = append(users, u)
	}

	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if !matchesUserFilter(params.Filter, u) {
			continue
		}
		if !listview.MatchesSearch(params.Search, u.Name, u.Email) {
			continue
		}
		filtered = append(filtered, u)
	}

	// Highlight cards follow the visible set, not the raw snapshot: a search
	// or filter narrows the cards along with the table.
	newestUser, newUsers := highlightNewMembers(filtered)

	sortUsers(filtered, params.Sort)

	page := listview.Paginate(filtered, params.Page)
	return &UserListPage{
		Page:       page,
		NewestUser: newestUser,
		NewUsers:   newUsers,
	}, nil
}

// Update merge-updates the member's display fields. Both are required.
func (s *userService) Update(ctx context.Context, userID, name, email string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: name and email are required", errors.ErrValidationFailed)
	}

	err := s.store.Update(ctx, usersPath, userID, map[string]interface{}{
		"name":  name,
		"email": email,
	})
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	// Resolved-name caches for this user are now stale.
	s.resolver.Invalidate(ctx, userID)
	return nil
}

// Delete removes the member record.
func (s *userService) Delete(ctx context.Context, userID string) error {
	if _, err := s.store.Get(ctx, usersPath, userID); err != nil {
		if err == store.ErrNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Delete(ctx, usersPath, userID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.resolver.Invalidate(ctx, userID)
	return nil
}

func (s *userService) snapshot(ctx context.Context) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(usersPath); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, usersPath)
}

// highlightNewMembers picks the newest member and up to four new-member
// cards, both ordered newest first.
func highlightNewMembers(users []models.User) (*models.User, []models.User) {
	byNewest := make([]models.User, len(users))
	copy(byNewest, users)
	sort.SliceStable(byNewest, func(i, j int) bool {
		return listview.CompareTimestamps(byNewest[i].CreatedAt, byNewest[j].CreatedAt) > 0
	})

	var newest *models.User
	if len(byNewest) > 0 {
		u := byNewest[0]
		newest = &u
	}

	newUsers := make([]models.User, 0, maxNewUserCards)
	for _, u := range byNewest {
		if !u.IsNew {
			continue
		}
		newUsers = append(newUsers, u)
		if len(newUsers) == maxNewUserCards {
			break
		}
	}

	return newest, newUsers
}

// matchesUserFilter accepts the new/old derived-age filters and otherwise
// matches the stored account status (active/inactive) exactly.
func matchesUserFilter(filter string, u models.User) bool {
	switch {
	case listview.IsAll(filter):
		return true
	case strings.EqualFold(filter, "new"):
		return u.IsNew
	case strings.EqualFold(filter, "old"):
		return !u.IsNew
	default:
		return strings.EqualFold(filter, u.Status)
	}
}

func sortUsers(users []models.User, key string) {
	switch strings.ToLower(key) {
	case "oldest":
		sort.SliceStable(users, func(i, j int) bool {
			return listview.CompareTimestamps(users[i].CreatedAt, users[j].CreatedAt) < 0
		})
	case "name-asc":
		sort.SliceStable(users, func(i, j int) bool {
			return listview.CompareNames(users[i].Name, users[j].Name) < 0
		})
	case "name-desc":
		sort.SliceStable(users, func(i, j int) bool {
			return listview.CompareNames(users[i].Name, users[j].Name) > 0
		})
	default: // newest
		sort.SliceStable(users, func(i, j int) bool {
			return listview.CompareTimestamps(users[i].CreatedAt, users[j].CreatedAt) > 0
		})
	}
}
