package session

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Session is one client's state entry. ID, IP, UserAgent and CreatedAt are
// fixed at creation; the remaining state is guarded so that concurrent
// requests from the same client can share the instance.
type Session struct {
	// ID is the hex-encoded 128-bit session identifier.
	ID string

	// IP and UserAgent bind the session to the creating client. Lookups
	// with a mismatching binding fail with ErrClientMismatch.
	IP        string
	UserAgent string

	CreatedAt time.Time

	mu           sync.RWMutex
	lastAccessed time.Time
	principal    string
	isNew        bool
	attrs        map[string]any
}

// LastAccessed returns the time of the most recent store access.
func (s *Session) LastAccessed() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastAccessed
}

// IsNew reports whether the session was created by the current request, i.e.
// the client has not yet presented its id back.
func (s *Session) IsNew() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isNew
}

// Principal returns the authenticated identity bound to the session, or ""
// for an anonymous session.
func (s *Session) Principal() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// SetPrincipal binds an authenticated identity to the session.
func (s *Session) SetPrincipal(principal string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = principal
}

// Value returns a named session attribute.
func (s *Session) Value(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.attrs[key]
	return v, ok
}

// SetValue stores a named session attribute.
func (s *Session) SetValue(key string, val any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attrs == nil {
		s.attrs = make(map[string]any)
	}
	s.attrs[key] = val
}

// DeleteValue removes a named session attribute.
func (s *Session) DeleteValue(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attrs, key)
}

// touch updates the access time, throttled by the touch interval.
func (s *Session) touch(now time.Time, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastAccessed) >= interval {
		s.lastAccessed = now
	}
}

// expired reports whether the session idled past ttl.
func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastAccessed) > ttl
}

func (s *Session) markKnown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isNew = false
}

// generateID creates a cryptographically unpredictable session id: 128 bits
// of randomness, hex encoded.
func generateID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
