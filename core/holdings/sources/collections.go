package sources

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// collectionCache holds the marketplace collection list for a TTL.
// The list is the same for every wallet, so it is shared across calls;
// wallet holdings themselves are never cached.
type collectionCache struct {
	mu        sync.RWMutex
	contracts []string
	built     time.Time
	ttl       time.Duration
	sf        singleflight.Group
}

func newCollectionCache(ttl time.Duration) *collectionCache {
	return &collectionCache{ttl: ttl}
}

func (c *collectionCache) fresh() ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.contracts == nil || c.ttl <= 0 || time.Since(c.built) > c.ttl {
		return nil, false
	}
	return c.contracts, true
}

// get returns the cached list or loads it, collapsing concurrent loads.
func (c *collectionCache) get(ctx context.Context, load func(context.Context) ([]string, error)) ([]string, error) {
	if contracts, ok := c.fresh(); ok {
		return contracts, nil
	}

	result, err, _ := c.sf.Do("collections", func() (interface{}, error) {
		// Double-check after winning the singleflight slot
		if contracts, ok := c.fresh(); ok {
			return contracts, nil
		}

		contracts, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.contracts = contracts
		c.built = time.Now()
		c.mu.Unlock()

		return contracts, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// invalidate drops the cached list.
func (c *collectionCache) invalidate() {
	c.mu.Lock()
	c.contracts = nil
	c.mu.Unlock()
}
