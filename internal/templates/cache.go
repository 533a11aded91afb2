package templates

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=cache_mocks_test.go -package=templates

type templatesStore interface {
	Create(ctx context.Context, t Template) (*Template, error)
	Get(ctx context.Context, id int) (*Template, error)
	GetAll(ctx context.Context, userID int) ([]Template, error)
	Delete(ctx context.Context, id int) (int, error)
}

// CachedRepo keeps per user template lists in an in-memory cache.
// Writes invalidate the owning user's entry, so a list read right after a
// create or delete already sees the change.
type CachedRepo struct {
	store      templatesStore
	cache      *freecache.Cache
	ttlSeconds int
}

func NewCachedRepo(store templatesStore, cacheSizeBytes, ttlSeconds int) *CachedRepo {
	return &CachedRepo{
		store:      store,
		cache:      freecache.NewCache(cacheSizeBytes),
		ttlSeconds: ttlSeconds,
	}
}

func cacheKey(userID int) []byte {
	return []byte(fmt.Sprintf("templates|%d", userID))
}

func (r *CachedRepo) Create(ctx context.Context, t Template) (*Template, error) {
	created, err := r.store.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	r.cache.Del(cacheKey(created.UserID))
	return created, nil
}

func (r *CachedRepo) Get(ctx context.Context, id int) (*Template, error) {
	return r.store.Get(ctx, id)
}

func (r *CachedRepo) GetAll(ctx context.Context, userID int) ([]Template, error) {
	key := cacheKey(userID)
	if cached, err := r.cache.Get(key); err == nil {
		var templates []Template
		if err := json.Unmarshal(cached, &templates); err == nil {
			return templates, nil
		}
		// corrupted entry, fall through to the store
		r.cache.Del(key)
	}

	templates, err := r.store.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	templatesJson, err := json.Marshal(templates)
	if err != nil {
		log.Errorf("templates cache: marshal for user %d: %s", userID, err)
		return templates, nil
	}
	if err := r.cache.Set(key, templatesJson, r.ttlSeconds); err != nil {
		log.Errorf("templates cache: set for user %d: %s", userID, err)
	}

	return templates, nil
}

func (r *CachedRepo) Delete(ctx context.Context, id int) (int, error) {
	ownerID, err := r.store.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	r.cache.Del(cacheKey(ownerID))
	return ownerID, nil
}
