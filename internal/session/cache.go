// Package session caches authenticated user lookups so that repeated
// requests with the same token do not hit the auth backend every time.
package session

import (
	"sync"
	"time"
)

// Clock abstracts time lookups so expiry can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// RealClock is the Clock used in production.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// User is the resolved identity for a session token.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may verify bookings.
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}

type entry struct {
	user      User
	expiresAt time.Time
}

// Cache is a TTL cache of token to user mappings. It is safe for
// concurrent use.
type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock Clock
	items map[string]entry
}

// NewCache creates a cache whose entries expire after ttl.
func NewCache(ttl time.Duration, clock Clock) *Cache {
	if clock == nil {
		clock = RealClock{}
	}
	return &Cache{
		ttl:   ttl,
		clock: clock,
		items: make(map[string]entry),
	}
}

// Get returns the cached user for a token. The second return value is
// false when the token is unknown or its entry has expired. Expired
// entries are removed on lookup.
func (c *Cache) Get(token string) (User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[token]
	if !ok {
		return User{}, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.items, token)
		return User{}, false
	}
	return e.user, true
}

// Put stores a user under a token, resetting its TTL.
func (c *Cache) Put(token string, user User) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[token] = entry{
		user:      user,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Invalidate removes a token from the cache, e.g. on logout.
func (c *Cache) Invalidate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, token)
}

// Purge removes all expired entries and returns how many were dropped.
func (c *Cache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	dropped := 0
	for token, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, token)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}
