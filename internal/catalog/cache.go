package catalog

import (
	"time"

	"github.com/jellydator/ttlcache/v3"
)

const methodsKey = "methods"

// CachedSource memoizes the method list of another Source for a fixed TTL.
type CachedSource struct {
	source Source
	cache  *ttlcache.Cache[string, []RawMethod]
}

// NewCachedSource wraps source with a TTL cache and starts its expiration loop.
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	c := ttlcache.New[string, []RawMethod](
		ttlcache.WithTTL[string, []RawMethod](ttl),
		ttlcache.WithDisableTouchOnHit[string, []RawMethod](),
	)
	go c.Start()
	return &CachedSource{source: source, cache: c}
}

// Methods implements Source. Failed listings are not cached.
func (s *CachedSource) Methods() ([]RawMethod, error) {
	if item := s.cache.Get(methodsKey); item != nil {
		return item.Value(), nil
	}

	methods, err := s.source.Methods()
	if err != nil {
		return nil, err
	}
	s.cache.Set(methodsKey, methods, ttlcache.DefaultTTL)
	return methods, nil
}

// Close stops the cache expiration loop.
func (s *CachedSource) Close() {
	s.cache.Stop()
}

// WithCache wraps source in a CachedSource when ttl is positive. The returned close
// function is always safe to call.
func WithCache(source Source, ttl time.Duration) (Source, func()) {
	if ttl <= 0 {
		return source, func() {}
	}
	cached := NewCachedSource(source, ttl)
	return cached, cached.Close
}
