// Package auth holds the credential set the HTTP transport reads from.
package auth

import "sync"

// Credentials is the mutable credential set of a client: app key, bearer
// token, and domain. Reads and writes are mutex-guarded so a credential
// switch is safe while requests are in flight.
type Credentials struct {
	mu     sync.RWMutex
	appKey string
	token  string
	domain int
}

// NewCredentials builds a credential set.
func NewCredentials(domain int, appKey, token string) *Credentials {
	return &Credentials{domain: domain, appKey: appKey, token: token}
}

// AppKey returns the current app key.
func (c *Credentials) AppKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.appKey
}

// Token returns the current bearer token, possibly empty.
func (c *Credentials) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.token
}

// Domain returns the current domain.
func (c *Credentials) Domain() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.domain
}

// SetToken replaces the bearer token.
func (c *Credentials) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.token = token
}

// Set replaces the whole credential set atomically.
func (c *Credentials) Set(domain int, appKey, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.domain = domain
	c.appKey = appKey
	c.token = token
}
