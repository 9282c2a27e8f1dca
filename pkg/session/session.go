// Package session holds the process-wide bearer credential.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Store is the single source of the bearer token. It is created empty,
// filled on login, and cleared on logout or when the transport sees an
// authorization failure. Clearing fires the registered teardown hook once.
type Store struct {
	mu         sync.RWMutex
	token      string
	onTeardown func()
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// SetToken installs a new bearer token (login transition).
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current bearer token, or "" when no session exists.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a session exists.
func (s *Store) Active() bool {
	return s.Token() != ""
}

// OnTeardown registers the hook invoked when the session is cleared.
// The hook runs outside the store's lock.
func (s *Store) OnTeardown(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTeardown = fn
}

// Clear destroys the session (logout/401 transition). The teardown hook
// fires only when there was a session to destroy, so a second Clear is
// a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	fn := s.onTeardown
	s.mu.Unlock()

	if had && fn != nil {
		fn()
	}
}

// ExpiresAt decodes the token's exp claim without verifying the signature.
// The client has no signing key; the server remains authoritative and will
// reject a forged or expired token anyway. Returns false when there is no
// token or no exp claim.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the token is known to have expired (with margin).
// A token without an exp claim is never reported expired.
func (s *Store) Expired(margin time.Duration) bool {
	exp, ok := s.ExpiresAt()
	if !ok {
		return false
	}
	return time.Now().Add(margin).After(exp)
}
