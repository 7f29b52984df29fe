// Package cache provides the access-ordered associative container the session
// store is built on. It pairs an index map with a doubly linked recency list
// so that lookups, inserts and removals, including the recency update on
// every hit, are O(1).
//
// The recency list keeps the least recently used entry at the front and the
// most recently used at the back; Oldest exposes the front for eviction.
//
// The container itself carries no eviction policy and no locking. Policy is
// layered on through the OnAccess and OnMutation hooks: OnAccess fires after
// every successful Get, OnMutation after every Put and Remove, which is where
// a wrapper implements TTL or capacity eviction (see core/session). Callers
// that share a cache across goroutines must serialize access themselves.
package cache
