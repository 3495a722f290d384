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

	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/posts/errors"
	"github.com/skillswap/admin-api/posts/models"
)

const postsPath = "posts"

// PostService defines the interface for post moderation
type PostService interface {
	// List derives the visible page of pending posts
	List(ctx context.Context, params listview.Params) (*listview.Page[models.Post], error)

	// Delete removes a post record
	Delete(ctx context.Context, postID, adminID string) error
}

// postService implements the PostService interface
type postService struct {
	store    store.Store
	views    *binder.Set
	resolver *binder.NameResolver
	audit    *audit.Recorder
}

// NewPostService creates a new instance of the post service.
// The binder set may be nil, in which case lists read the store directly.
func NewPostService(st store.Store, views *binder.Set, resolver *binder.NameResolver, recorder *audit.Recorder) PostService {
	return &postService{
		store:    st,
		views:    views,
		resolver: resolver,
		audit:    recorder,
	}
}

// List surfaces only pending posts, with resolved author names, sorted
// newest first by default.
func (s *postService) List(ctx context.Context, params listview.Params) (*listview.Page[models.Post], error) {
	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	pending := make([]models.Post, 0, len(snapshot))
	userIDs := make([]string, 0, len(snapshot))
	for _, doc := range snapshot {
		p := models.FromDocument(doc)
		if p.Status != models.StatusPending {
			continue
		}
		pending = append(pending, p)
		userIDs = append(userIDs, p.UserID)
	}

	names := s.resolver.ResolveNames(ctx, userIDs)

	filtered := make([]models.Post, 0, len(pending))
	for _, p := range pending {
		p.UserName = names[p.UserID]
		if !listview.MatchesSearch(params.Search, p.Content, p.UserName) {
			continue
		}
		filtered = append(filtered, p)
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

// Delete removes the post record and appends an audit entry.
func (s *postService) Delete(ctx context.Context, postID, adminID string) error {
	doc, err := s.store.Get(ctx, postsPath, postID)
	if err != nil {
		if err == store.ErrNotFound {
			return errors.ErrPostNotFound
		}
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	if err := s.store.Delete(ctx, postsPath, postID); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	s.audit.Record(ctx, "Post Deleted", adminID, fmt.Sprintf("%s's post was deleted.", doc.String("user_id")))
	return nil
}

func (s *postService) snapshot(ctx context.Context) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(postsPath); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, postsPath)
}
