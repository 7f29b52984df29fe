// Package session implements the per-client session state of the dispatch
// core: a bounded, expiring store built on the access-ordered container from
// core/cache.
//
// Sessions are created on first access by a client without a valid session id
// and live until explicit invalidation, idle-TTL expiration, or capacity
// eviction of the least recently used entry. Ids are 128 bits of
// cryptographic randomness, hex encoded, and are checked against the store
// before insertion so a collision regenerates the id.
//
// Every lookup validates the stored client binding: a request presenting a
// valid id from a different IP address or User-Agent fails with
// ErrClientMismatch instead of returning the entry. Callers must treat that
// as "no session" and issue a fresh one.
//
// The store serializes all operations with a single mutex; session operations
// are O(1) amortized, so contention stays low even with one lock.
package session
