package chain

import (
	"sort"

	"github.com/webfold/dispatch/core/factory"
	"github.com/webfold/dispatch/core/handler"
)

// MappedFilter is one filter mapping: the shared lazy factory plus the global
// declaration order used to interleave filters across mapping dimensions.
type MappedFilter struct {
	Name    string
	Order   int
	Factory *factory.Lazy[handler.Filter]
}

// Holder accumulates the mapped filters of one mapping target (a URL pattern
// or a handler name). Accumulation always goes through Add; after Finalize
// the holder is frozen and safe for concurrent reads.
type Holder struct {
	filters []MappedFilter
	frozen  bool
}

// NewHolder creates a holder seeded with the given filters.
func NewHolder(filters ...MappedFilter) *Holder {
	h := &Holder{}
	for _, f := range filters {
		h.Add(f)
	}
	return h
}

// Add appends a mapped filter unless the same filter identity is already
// present. Duplicate mappings of one filter to one target collapse to the
// first declaration.
func (h *Holder) Add(f MappedFilter) {
	if h.frozen {
		return
	}
	for _, existing := range h.filters {
		if existing.Factory == f.Factory {
			return
		}
	}
	h.filters = append(h.filters, f)
}

// MergeFrom adds every filter of other, deduplicating by identity. Used to
// propagate filters of broader URL patterns into nested ones.
func (h *Holder) MergeFrom(other *Holder) {
	for _, f := range other.filters {
		h.Add(f)
	}
}

// Finalize sorts the filters ascending by declaration order and freezes the
// holder. Idempotent.
func (h *Holder) Finalize() {
	if h.frozen {
		return
	}
	sort.SliceStable(h.filters, func(i, j int) bool {
		return h.filters[i].Order < h.filters[j].Order
	})
	h.filters = h.filters[:len(h.filters):len(h.filters)]
	h.frozen = true
}

// Filters returns the ordered filter list. Callers must not mutate it.
func (h *Holder) Filters() []MappedFilter {
	return h.filters
}
