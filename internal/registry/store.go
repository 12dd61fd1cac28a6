package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/caching"
	"github.com/redis/go-redis/v9"
)

// Store holds the current registry of every session and search context.
// Replace swaps the whole registry, entries are never merged.
type Store interface {
	Replace(ctx context.Context, sessionID string, searchContext schema.SearchContext, registry *Registry) error
	// Current returns an empty registry when nothing was stored yet.
	Current(ctx context.Context, sessionID string, searchContext schema.SearchContext) (*Registry, error)
}

// Lookup finds the entry of rowIndex in the current registry of the context.
func Lookup(ctx context.Context, store Store, sessionID string, searchContext schema.SearchContext, rowIndex int) (Entry, error) {
	current, err := store.Current(ctx, sessionID, searchContext)
	if err != nil {
		return Entry{}, err
	}

	return current.Get(rowIndex)
}

func key(sessionID string, searchContext schema.SearchContext) string {
	return fmt.Sprintf("registry:%s:%s", sessionID, searchContext)
}

type memoryStore struct {
	registries map[string]*Registry
	sync.RWMutex
}

func NewMemoryStore() Store {
	return &memoryStore{registries: map[string]*Registry{}}
}

func (m *memoryStore) Replace(ctx context.Context, sessionID string, searchContext schema.SearchContext, registry *Registry) error {
	m.Lock()
	m.registries[key(sessionID, searchContext)] = registry.clone()
	m.Unlock()

	return nil
}

func (m *memoryStore) Current(ctx context.Context, sessionID string, searchContext schema.SearchContext) (*Registry, error) {
	m.RLock()
	defer m.RUnlock()

	current, ok := m.registries[key(sessionID, searchContext)]
	if !ok {
		return New(), nil
	}

	return current, nil
}

type redisStore struct {
	cache *caching.Cacher
	ttl   time.Duration
}

// NewRedisStore keeps every registry under its own key, so a replace is a single SET.
func NewRedisStore(redisClient *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		cache: caching.NewRedisCache(redisClient),
		ttl:   ttl,
	}
}

func (s *redisStore) Replace(ctx context.Context, sessionID string, searchContext schema.SearchContext, registry *Registry) error {
	return s.cache.Store(ctx, key(sessionID, searchContext), registry, s.ttl)
}

func (s *redisStore) Current(ctx context.Context, sessionID string, searchContext schema.SearchContext) (*Registry, error) {
	current := New()

	found, err := s.cache.Fetch(ctx, key(sessionID, searchContext), current)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	if !found {
		return New(), nil
	}

	return current, nil
}
