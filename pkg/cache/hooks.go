package cache

import (
	"context"
	"time"

	"github.com/matzehuels/staffline/pkg/observability"
)

// hookedCache reports every Get and Set to the registered cache hooks.
type hookedCache struct {
	Cache
}

// WithHooks wraps c so hits, misses and writes reach
// [observability.Cache]. The key kind comes from [Kind].
func WithHooks(c Cache) Cache {
	return hookedCache{Cache: c}
}

func (h hookedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := h.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, Kind(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, Kind(key))
		}
	}
	return data, hit, err
}

func (h hookedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := h.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, Kind(key), len(data))
	}
	return err
}

// Clear forwards to the wrapped cache when it supports clearing.
func (h hookedCache) Clear(ctx context.Context) (int, error) {
	if cl, ok := h.Cache.(Clearer); ok {
		return cl.Clear(ctx)
	}
	return 0, nil
}
