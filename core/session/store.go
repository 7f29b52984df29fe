package session

import (
	"errors"
	"sync"
	"time"

	"github.com/webfold/dispatch/core/cache"
)

// Store is the bounded, expiring session store. A single mutex serializes all
// operations; the underlying container keeps them O(1).
type Store struct {
	mu      sync.Mutex
	entries *cache.Cache[string, *Session]

	ttl           time.Duration
	touchInterval time.Duration
	maxEntries    int
	now           func() time.Time
	newID         func() (string, error)
}

// NewStore creates a session store with the given options.
func NewStore(opts ...Option) *Store {
	s := &Store{
		ttl:        DefaultTTL,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
		newID:      generateID,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.entries = cache.New[string, *Session]()
	s.entries.OnAccess = func(e *cache.Entry[string, *Session]) {
		e.Value.touch(s.now(), s.touchInterval)
	}
	s.entries.OnMutation = s.evict

	return s
}

// Create makes a new session bound to the given client, generating an id that
// is not already present in the store.
func (s *Store) Create(ip, userAgent string) (*Session, error) {
	if ip == "" {
		return nil, ErrMissingIP
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	for attempt := 0; ; attempt++ {
		if attempt == maxIDAttempts {
			return nil, ErrIDGeneration
		}
		generated, err := s.newID()
		if err != nil {
			return nil, errors.Join(ErrIDGeneration, err)
		}
		if _, exists := s.entries.Peek(generated); !exists {
			id = generated
			break
		}
	}

	now := s.now()
	sess := &Session{
		ID:           id,
		IP:           ip,
		UserAgent:    userAgent,
		CreatedAt:    now,
		lastAccessed: now,
		isNew:        true,
	}
	s.entries.Put(id, sess)
	return sess, nil
}

// Get returns the live session for id after validating the client binding.
// Expired entries are removed and reported as ErrNotFound; a binding mismatch
// fails closed with ErrClientMismatch without touching the entry.
func (s *Store) Get(id, ip, userAgent string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.entries.Peek(id)
	if !ok {
		return nil, ErrNotFound
	}
	if sess.expired(s.now(), s.ttl) {
		s.entries.Remove(id)
		return nil, ErrNotFound
	}
	if sess.IP != ip || sess.UserAgent != userAgent {
		return nil, ErrClientMismatch
	}

	// Reorder to most recently used and refresh the access time.
	s.entries.Get(id)
	sess.markKnown()
	return sess, nil
}

// Invalidate removes the session for id and reports whether it existed.
func (s *Store) Invalidate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Remove(id)
}

// Len returns the number of stored sessions, including not yet evicted
// expired ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries.Len()
}

// TTL returns the configured idle timeout.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// evict is the container's mutation hook: it drops expired entries from the
// least-recently-used end, then enforces the capacity bound. Runs with the
// store mutex held.
func (s *Store) evict() {
	now := s.now()
	for {
		oldest, ok := s.entries.Oldest()
		if !ok || !oldest.Value.expired(now, s.ttl) {
			break
		}
		s.entries.Remove(oldest.Key)
	}
	if s.maxEntries <= 0 {
		return
	}
	for s.entries.Len() > s.maxEntries {
		oldest, ok := s.entries.Oldest()
		if !ok {
			break
		}
		s.entries.Remove(oldest.Key)
	}
}
