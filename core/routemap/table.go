package routemap

import (
	"fmt"
	"sort"
	"strings"
)

// MatchKind reports how a lookup result matched the path. The dispatcher uses
// it to apply the exact > extension > prefix > catch-all precedence, where
// the extension step lives outside this package.
type MatchKind uint8

const (
	// MatchExact means the pattern equals the path.
	MatchExact MatchKind = iota
	// MatchPrefix means the pattern is a proper prefix of the path.
	MatchPrefix
	// MatchCatchAll means only the reserved "/" pattern matched.
	MatchCatchAll
)

// Merge combines the value already stored for a pattern with a newly added
// one. Tables without a merge function reject duplicate registrations.
type Merge[V any] func(existing, incoming V) V

// node is an owned tree node: children never outlive their parent and every
// child's pattern extends the parent's pattern.
type node[V any] struct {
	pattern  string
	exact    bool
	value    V
	children []*node[V]
}

// Table maps URL patterns to values with exact/prefix semantics and
// most-specific-match resolution. The zero value is not usable; construct
// with New.
type Table[V any] struct {
	roots     []*node[V]
	catchAll  *node[V]
	merge     Merge[V]
	finalized bool
}

// Option configures a Table.
type Option[V any] func(*Table[V])

// WithMerge makes duplicate registrations for a pattern accumulate through fn
// instead of being rejected.
func WithMerge[V any](fn Merge[V]) Option[V] {
	return func(t *Table[V]) {
		t.merge = fn
	}
}

// New creates an empty table.
func New[V any](opts ...Option[V]) *Table[V] {
	t := &Table[V]{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add registers a pattern. It reports whether a new entry was inserted:
// a duplicate that was merged into an existing entry, or a second catch-all
// registration (which is ignored), report false. A duplicate that cannot be
// merged is an error.
func (t *Table[V]) Add(pattern string, exact bool, value V) (bool, error) {
	if t.finalized {
		return false, ErrFinalized
	}
	if pattern == "" {
		return false, ErrEmptyPattern
	}

	// "/" as a prefix pattern is the reserved catch-all slot.
	if pattern == "/" && !exact {
		if t.catchAll != nil {
			return false, nil
		}
		t.catchAll = &node[V]{pattern: pattern, value: value}
		return true, nil
	}

	return t.insert(&t.roots, &node[V]{pattern: pattern, exact: exact, value: value})
}

// insert places n into the given level, nesting it beneath a broader prefix
// node or demoting narrower nodes beneath it as needed.
func (t *Table[V]) insert(level *[]*node[V], n *node[V]) (bool, error) {
	for _, e := range *level {
		if e.pattern == n.pattern && e.exact == n.exact {
			if t.merge == nil {
				return false, fmt.Errorf("%w: %q", ErrConflict, n.pattern)
			}
			e.value = t.merge(e.value, n.value)
			return false, nil
		}
		// A node nests beneath a strictly shorter prefix node. Equal
		// patterns of different exactness stay siblings: a prefix node
		// never matches its own pattern, so nesting would orphan the
		// exact one.
		if !e.exact && len(n.pattern) > len(e.pattern) && strings.HasPrefix(n.pattern, e.pattern) {
			return t.insert(&e.children, n)
		}
	}

	if !n.exact {
		// The new node may be broader than existing ones: demote every
		// node it prefixes to a detalization of the new node.
		keep := (*level)[:0]
		for _, e := range *level {
			if len(e.pattern) > len(n.pattern) && strings.HasPrefix(e.pattern, n.pattern) {
				n.children = append(n.children, e)
			} else {
				keep = append(keep, e)
			}
		}
		*level = keep
	}

	*level = append(*level, n)
	return true, nil
}

// Finalize sorts every level and freezes the table. Lookups before Finalize
// are undefined. Finalize is idempotent.
func (t *Table[V]) Finalize() {
	if t.finalized {
		return
	}
	sortLevel(t.roots)
	t.finalized = true
}

func sortLevel[V any](level []*node[V]) {
	// Prefix nodes sort before an exact node with the identical pattern so
	// that the exact one wins the closest-candidate position for its own
	// path.
	sort.Slice(level, func(i, j int) bool {
		a, b := level[i], level[j]
		if a.pattern != b.pattern {
			return a.pattern < b.pattern
		}
		return !a.exact && b.exact
	})
	for _, n := range level {
		n.children = n.children[:len(n.children):len(n.children)]
		sortLevel(n.children)
	}
}

// Lookup resolves a path to the most specific registered value. The catch-all
// answers only when no other node matches.
func (t *Table[V]) Lookup(path string) (V, MatchKind, bool) {
	if n := lookupLevel(t.roots, path); n != nil {
		if n.exact {
			return n.value, MatchExact, true
		}
		return n.value, MatchPrefix, true
	}
	if t.catchAll != nil {
		return t.catchAll.value, MatchCatchAll, true
	}
	var zero V
	return zero, 0, false
}

// lookupLevel binary-searches one sorted level for the closest candidate and
// verifies it. At most two nodes per level can verify for a given path (an
// exact node equal to it and a prefix node it extends), and they occupy
// adjacent positions when they share a pattern, so one fallback step covers
// the sibling case.
func lookupLevel[V any](level []*node[V], path string) *node[V] {
	idx := sort.Search(len(level), func(i int) bool {
		return level[i].pattern > path
	})
	if idx == 0 {
		return nil
	}

	if n := verify(level[idx-1], path); n != nil {
		return n
	}
	if idx > 1 && level[idx-2].pattern == level[idx-1].pattern {
		return verify(level[idx-2], path)
	}
	return nil
}

// verify confirms that n matches path and descends into detalizations,
// preferring the most specific match.
func verify[V any](n *node[V], path string) *node[V] {
	if n.exact {
		if n.pattern == path {
			return n
		}
		return nil
	}
	if len(path) <= len(n.pattern) || !strings.HasPrefix(path, n.pattern) {
		return nil
	}
	if child := lookupLevel(n.children, path); child != nil {
		return child
	}
	return n
}

// Walk visits every broader-to-narrower edge of the tree, parents before
// descendants. It does not depend on Finalize. When a catch-all is registered it is visited as the
// parent of every top-level node. The chain registry uses this to push
// inherited filter lists down to more specific patterns.
func (t *Table[V]) Walk(fn func(parent, child V)) {
	if t.catchAll != nil {
		for _, r := range t.roots {
			fn(t.catchAll.value, r.value)
		}
	}
	var rec func(n *node[V])
	rec = func(n *node[V]) {
		for _, c := range n.children {
			fn(n.value, c.value)
			rec(c)
		}
	}
	for _, r := range t.roots {
		rec(r)
	}
}

// Each calls fn for every registered value, including the catch-all.
func (t *Table[V]) Each(fn func(pattern string, exact bool, value V)) {
	if t.catchAll != nil {
		fn(t.catchAll.pattern, false, t.catchAll.value)
	}
	var rec func(ns []*node[V])
	rec = func(ns []*node[V]) {
		for _, n := range ns {
			fn(n.pattern, n.exact, n.value)
			rec(n.children)
		}
	}
	rec(t.roots)
}
