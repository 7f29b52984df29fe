package cache

import "container/list"

// Entry is a stored key/value pair, handed to the OnAccess hook and returned
// by Oldest.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Cache is a generic access-ordered map. Every successful Get moves the entry
// to the most-recently-used end of the recency list.
type Cache[K comparable, V any] struct {
	index map[K]*list.Element
	order *list.List // front = least recently used, back = most recently used

	// OnAccess runs after every successful Get with the accessed entry.
	OnAccess func(*Entry[K, V])
	// OnMutation runs after every Put and Remove. It may call Remove and
	// Oldest to evict entries; nested mutations do not re-trigger the hook.
	OnMutation func()

	inHook bool
}

// New creates an empty cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		index: make(map[K]*list.Element),
		order: list.New(),
	}
}

// Get returns the value for key and marks the entry most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToBack(el)
	entry := el.Value.(*Entry[K, V])
	c.access(entry)
	return entry.Value, true
}

// Peek returns the value for key without touching the access order or hooks.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	el, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return el.Value.(*Entry[K, V]).Value, true
}

// Put stores the value for key at the most-recently-used end and reports
// whether an existing entry was replaced.
func (c *Cache[K, V]) Put(key K, value V) bool {
	if el, ok := c.index[key]; ok {
		el.Value.(*Entry[K, V]).Value = value
		c.order.MoveToBack(el)
		c.mutate()
		return true
	}
	c.index[key] = c.order.PushBack(&Entry[K, V]{Key: key, Value: value})
	c.mutate()
	return false
}

// Remove deletes the entry for key and reports whether it existed.
func (c *Cache[K, V]) Remove(key K) bool {
	el, ok := c.index[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.index, key)
	c.mutate()
	return true
}

// Oldest returns the least-recently-used entry without touching it.
func (c *Cache[K, V]) Oldest() (Entry[K, V], bool) {
	front := c.order.Front()
	if front == nil {
		return Entry[K, V]{}, false
	}
	return *front.Value.(*Entry[K, V]), true
}

// Len returns the number of stored entries.
func (c *Cache[K, V]) Len() int {
	return len(c.index)
}

// Keys returns the keys in access order, least recently used first.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, len(c.index))
	for el := c.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*Entry[K, V]).Key)
	}
	return keys
}

func (c *Cache[K, V]) access(entry *Entry[K, V]) {
	if c.OnAccess == nil || c.inHook {
		return
	}
	c.inHook = true
	defer func() { c.inHook = false }()
	c.OnAccess(entry)
}

func (c *Cache[K, V]) mutate() {
	if c.OnMutation == nil || c.inHook {
		return
	}
	c.inHook = true
	defer func() { c.inHook = false }()
	c.OnMutation()
}
