package binder

import (
	"context"
	"sync"

	"github.com/skillswap/admin-api/internal/cache"
	"github.com/skillswap/admin-api/internal/store"
)

const (
	// UnknownUserName is the display fallback for unresolvable user ids.
	UnknownUserName = "Unknown User"

	// SystemUserID marks records written by the service itself.
	SystemUserID = "system"

	// SystemUserName is the display name for SystemUserID.
	SystemUserName = "System"

	usersPath = "users"
)

// NameResolver resolves user ids to display names, with an optional cache so
// repeated snapshot rebuilds don't re-read unchanged users.
type NameResolver struct {
	store store.Store
	cache *cache.GenericCacheService
}

// NewNameResolver creates a resolver over the given store. The cache service
// may be nil, in which case every resolution hits the store.
func NewNameResolver(st store.Store, cacheService *cache.GenericCacheService) *NameResolver {
	return &NameResolver{store: st, cache: cacheService}
}

// ResolveName resolves a single user id to a display name.
// A missing or unreadable record resolves to UnknownUserName.
func (r *NameResolver) ResolveName(ctx context.Context, userID string) string {
	if userID == SystemUserID {
		return SystemUserName
	}
	if userID == "" {
		return UnknownUserName
	}

	cacheKey := "username:" + userID
	if r.cache != nil {
		var cached string
		if err := r.cache.GetCached(ctx, cacheKey, &cached); err == nil && cached != "" {
			return cached
		}
	}

	doc, err := r.store.Get(ctx, usersPath, userID)
	if err != nil {
		return UnknownUserName
	}

	name := doc.String("name")
	if name == "" {
		return UnknownUserName
	}

	if r.cache != nil {
		_ = r.cache.CacheData(ctx, cacheKey, name)
	}
	return name
}

// ResolveNames resolves a batch of user ids concurrently. The result maps
// every requested id, falling back to UnknownUserName.
func (r *NameResolver) ResolveNames(ctx context.Context, userIDs []string) map[string]string {
	unique := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		unique[id] = struct{}{}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	names := make(map[string]string, len(unique))

	for id := range unique {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			name := r.ResolveName(ctx, id)
			mu.Lock()
			names[id] = name
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	return names
}

// Invalidate drops the cached name for a user, used after profile edits.
func (r *NameResolver) Invalidate(ctx context.Context, userID string) {
	if r.cache != nil {
		_ = r.cache.InvalidateKey(ctx, "username:"+userID)
	}
}
