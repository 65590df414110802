package auth

import (
	"sync"
	"time"
)

// TokenCache holds the single bearer token issued to a client.
// A stored token is replaced wholesale on every refresh.
type TokenCache struct {
	mu        sync.RWMutex
	value     string
	expiresAt time.Time
}

// NewTokenCache returns an empty cache.
func NewTokenCache() *TokenCache {
	return &TokenCache{}
}

// Load returns the cached token if one exists and now is strictly before
// its expiry. The boolean is false for a missing or expired token.
func (c *TokenCache) Load(now time.Time) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.value == "" {
		return "", false
	}
	if !now.Before(c.expiresAt) {
		return "", false
	}
	return c.value, true
}

// Save replaces the cached token.
func (c *TokenCache) Save(value string, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.expiresAt = expiresAt
}

// ExpiresAt returns the expiry of the cached token, or the zero time if
// nothing has been cached yet.
func (c *TokenCache) ExpiresAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expiresAt
}

// Clear removes the cached token.
func (c *TokenCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = ""
	c.expiresAt = time.Time{}
}
