// Package profile caches the active user's own profile to cut redundant
// network fetches. The cache is process-memory only and is cleared on
// sign-out.
package profile

import (
	"context"
	"sync"
	"time"

	"github.com/circleapp/circle-client/client"
	"github.com/circleapp/circle-client/logging"
)

// TTL is the maximum age at which a cached profile is still served without
// refetching.
const TTL = 5 * time.Minute

// SelfKey is the cache key of the active session's own profile.
const SelfKey = "self"

// Fetcher fetches the authoritative profile from the remote API.
type Fetcher interface {
	GetMe(ctx context.Context) (client.Profile, error)
}

type entry struct {
	profile   client.Profile
	fetchedAt time.Time
}

// Cache is a TTL-bounded, stale-on-failure profile cache.
type Cache struct {
	mu      sync.Mutex
	fetch   Fetcher
	log     logging.Logger
	now     func() time.Time
	entries map[string]entry
}

func NewCache(fetch Fetcher, log logging.Logger) *Cache {
	return &Cache{
		fetch:   fetch,
		log:     log,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the self profile. A cached entry younger than TTL is served
// without a network call unless forceRefresh is set. On remote failure a
// stale entry, if any, is served as a degraded fallback; with no entry the
// error propagates.
func (c *Cache) Get(ctx context.Context, forceRefresh bool) (client.Profile, error) {
	c.mu.Lock()
	cached, ok := c.entries[SelfKey]
	if ok && !forceRefresh && c.now().Sub(cached.fetchedAt) < TTL {
		c.mu.Unlock()
		return cached.profile, nil
	}
	c.mu.Unlock()

	p, err := c.fetch.GetMe(ctx)
	if err != nil {
		if ok {
			c.log.Warn(ctx, "profile fetch failed, serving stale copy",
				"age", c.now().Sub(cached.fetchedAt), "error", err)
			return cached.profile, nil
		}
		return nil, err
	}

	c.Put(p)
	return p, nil
}

// Put replaces the cached self profile and resets its fetch timestamp.
// Used by the session manager after login and profile updates.
func (c *Cache) Put(p client.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[SelfKey] = entry{profile: p, fetchedAt: c.now()}
}

// Invalidate clears all entries. Called on sign-out.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
