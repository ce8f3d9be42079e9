package forecast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	window    Window
	timestamp time.Time
}

// Cache serves repeated forecast requests for the same coordinate from
// memory for a while. Concurrent misses for one coordinate share a single
// upstream call, which outlives the caller that started it. Failed requests
// are never stored.
type Cache struct {
	next         Provider
	ttl          time.Duration
	fetchTimeout time.Duration
	now          func() time.Time

	group singleflight.Group

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithFetchTimeout bounds the shared upstream call. Zero leaves it to next.
func WithFetchTimeout(d time.Duration) CacheOption {
	return func(c *Cache) { c.fetchTimeout = d }
}

// NewCache wraps next. A ttl of zero or less disables caching.
func NewCache(next Provider, ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		next:  next,
		ttl:   ttl,
		now:   time.Now,
		cache: make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

func (c *Cache) Forecast(ctx context.Context, lat, lon float64) (Window, error) {
	if c.ttl <= 0 {
		return c.next.Forecast(ctx, lat, lon)
	}

	key := cacheKey(lat, lon)

	c.mu.Lock()
	if entry, ok := c.cache[key]; ok {
		if c.now().Sub(entry.timestamp) < c.ttl {
			c.mu.Unlock()
			return entry.window, nil
		}
		// expired
		delete(c.cache, key)
	}
	c.mu.Unlock()

	// Waiters share the call, so one caller giving up must not cancel it for
	// the rest.
	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if c.fetchTimeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.fetchTimeout)
			defer cancel()
		}
		w, err := c.next.Forecast(fetchCtx, lat, lon)
		if err != nil {
			return Window{}, err
		}
		c.mu.Lock()
		c.cache[key] = cacheEntry{window: w, timestamp: c.now()}
		c.mu.Unlock()
		return w, nil
	})

	select {
	case <-ctx.Done():
		return Window{}, &TransportError{Op: "forecast", Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return Window{}, res.Err
		}
		return res.Val.(Window), nil
	}
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}
