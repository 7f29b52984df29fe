package session

import "time"

const (
	// DefaultTTL is the default idle timeout before a session expires.
	DefaultTTL = 30 * time.Minute
	// DefaultMaxEntries bounds the store size; the least recently used
	// session is evicted beyond it. Zero disables the bound.
	DefaultMaxEntries = 100_000

	// maxIDAttempts caps the id regeneration loop on collision.
	maxIDAttempts = 10
)

// Option is a functional option configuring a Store.
type Option func(*Store)

// WithTTL sets the idle time-to-live of sessions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxEntries sets the capacity bound. Zero or negative disables it.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		s.maxEntries = n
	}
}

// WithTouchInterval throttles access-time updates: a session's last-access
// timestamp is refreshed at most once per interval, reducing churn under
// rapid request bursts. Zero (the default) updates on every access.
func WithTouchInterval(interval time.Duration) Option {
	return func(s *Store) {
		if interval > 0 {
			s.touchInterval = interval
		}
	}
}

// WithClock overrides the store's time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}
