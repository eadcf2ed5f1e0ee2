// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"library_backend/internal/feature/library/domain/entity"
	"library_backend/internal/feature/library/usecase"
)

// CachingLibraryRepository decorates a LibraryRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. The library catalog changes rarely
// (administrative creates/deletes only), so reads are cached aggressively
// and writes invalidate the whole namespace.
type CachingLibraryRepository struct {
	inner     usecase.LibraryRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator satisfies LibraryRepository.
var _ usecase.LibraryRepository = (*CachingLibraryRepository)(nil)

// NewCachingLibraryRepository decorates a LibraryRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "libraries".
func NewCachingLibraryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.LibraryRepository, namespace string) *CachingLibraryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "libraries"
	}
	return &CachingLibraryRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a library and invalidates the cached catalog.
func (c *CachingLibraryRepository) Create(ctx context.Context, library *entity.Library) error {
	if err := c.inner.Create(ctx, library); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// List retrieves all libraries, checking cache first then falling back to the database.
func (c *CachingLibraryRepository) List(ctx context.Context) ([]entity.Library, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.List(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Library
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID retrieves a single library, checking cache first.
func (c *CachingLibraryRepository) FindByID(ctx context.Context, id uint) (*entity.Library, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Library
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Delete removes a library (and its memberships) and invalidates the cache.
func (c *CachingLibraryRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// invalidate drops every cached entry in the namespace (best effort).
func (c *CachingLibraryRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.namespace+":*")
}

// listKey returns the cache key for the full catalog.
func (c *CachingLibraryRepository) listKey() string {
	return c.namespace + ":all"
}

// idKey returns the cache key for a single library.
func (c *CachingLibraryRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingLibraryRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
