package repogen

import (
	"context"
	"fmt"

	"github.com/rise-and-shine/catalog/observability/logger"
)

// Cache is a key-value cache holding serialized entities.
type Cache interface {
	// Get decodes the value stored under key into dst. It reports false when the key is absent.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value under key.
	Set(ctx context.Context, key string, value any) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// CachedStore is a read-through cache in front of another Store.
//
// Only GetByID is served from the cache. Update and Delete invalidate the entry
// after the backend call succeeded. Cache failures are logged and never fail the
// call, the wrapped store stays the authority.
type CachedStore[E any, ID comparable, P Entity[E, ID]] struct {
	next   Store[E, ID]
	cache  Cache
	prefix string
	logger logger.Logger
}

// NewCachedStore wraps next with cache. Keys are built as prefix + ":" + id.
func NewCachedStore[E any, ID comparable, P Entity[E, ID]](
	next Store[E, ID],
	cache Cache,
	prefix string,
	log logger.Logger,
) *CachedStore[E, ID, P] {
	return &CachedStore[E, ID, P]{
		next:   next,
		cache:  cache,
		prefix: prefix,
		logger: log.Named("repogen.cache").With("cache_prefix", prefix),
	}
}

func (s *CachedStore[E, ID, P]) GetByID(ctx context.Context, id ID) (*E, bool, error) {
	key := s.key(id)

	cached := new(E)
	hit, err := s.cache.Get(ctx, key, cached)
	switch {
	case err != nil:
		s.logger.WithContext(ctx).With("cache_key", key).Warnx(err)
	case hit:
		return cached, true, nil
	}

	entity, found, err := s.next.GetByID(ctx, id)
	if err != nil || !found {
		return entity, found, err
	}

	if err = s.cache.Set(ctx, key, entity); err != nil {
		s.logger.WithContext(ctx).With("cache_key", key).Warnx(err)
	}
	return entity, true, nil
}

func (s *CachedStore[E, ID, P]) GetAll(ctx context.Context) ([]E, error) {
	return s.next.GetAll(ctx)
}

func (s *CachedStore[E, ID, P]) Add(ctx context.Context, entity *E) (ID, error) {
	return s.next.Add(ctx, entity)
}

func (s *CachedStore[E, ID, P]) Update(ctx context.Context, entity *E) (int64, error) {
	n, err := s.next.Update(ctx, entity)
	if err != nil {
		return n, err
	}
	s.invalidate(ctx, P(entity).GetID())
	return n, nil
}

func (s *CachedStore[E, ID, P]) Delete(ctx context.Context, id ID) (int64, error) {
	n, err := s.next.Delete(ctx, id)
	if err != nil {
		return n, err
	}
	s.invalidate(ctx, id)
	return n, nil
}

func (s *CachedStore[E, ID, P]) invalidate(ctx context.Context, id ID) {
	Evict(ctx, s.cache, s.prefix, s.logger, id)
}

func (s *CachedStore[E, ID, P]) key(id ID) string {
	return CacheKey(s.prefix, id)
}

// CacheKey returns the key CachedStore uses for id under prefix.
func CacheKey[ID comparable](prefix string, id ID) string {
	return fmt.Sprintf("%s:%v", prefix, id)
}

// Evict removes the cache entries of ids under prefix. Failures are logged and skipped.
func Evict[ID comparable](ctx context.Context, cache Cache, prefix string, log logger.Logger, ids ...ID) {
	for _, id := range ids {
		key := CacheKey(prefix, id)
		if err := cache.Delete(ctx, key); err != nil {
			log.WithContext(ctx).With("cache_key", key).Warnx(err)
		}
	}
}
