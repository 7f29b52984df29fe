package chain

import (
	"github.com/webfold/dispatch/core/routemap"
)

// Registry collects the filter mappings of one deployed application: URL
// patterns feed a pattern table, handler names feed a plain map. Built once
// at load time; concurrent request goroutines only read it after Finalize.
type Registry struct {
	urls  *routemap.Table[*Holder]
	named map[string]*Holder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		urls: routemap.New(routemap.WithMerge(func(existing, incoming *Holder) *Holder {
			existing.MergeFrom(incoming)
			return existing
		})),
		named: make(map[string]*Holder),
	}
}

// MapURL registers a filter for a URL pattern. Filter lists targeting the
// same or nested patterns accumulate.
func (reg *Registry) MapURL(pattern string, exact bool, f MappedFilter) error {
	_, err := reg.urls.Add(pattern, exact, NewHolder(f))
	return err
}

// MapName registers a filter for a handler name.
func (reg *Registry) MapName(handlerName string, f MappedFilter) {
	h, ok := reg.named[handlerName]
	if !ok {
		h = NewHolder()
		reg.named[handlerName] = h
	}
	h.Add(f)
}

// Finalize pushes filters of broader URL patterns down into nested ones,
// then sorts and freezes every holder. Must be called before ForRequest.
func (reg *Registry) Finalize() {
	reg.urls.Walk(func(parent, child *Holder) {
		child.MergeFrom(parent)
	})
	reg.urls.Finalize()
	reg.urls.Each(func(_ string, _ bool, h *Holder) {
		h.Finalize()
	})
	for _, h := range reg.named {
		h.Finalize()
	}
}

// ForRequest returns the two ordered filter lists applicable to a request:
// the URL-mapped list for its path and the name-mapped list for its resolved
// handler. Either may be empty.
func (reg *Registry) ForRequest(path, handlerName string) (url, named []MappedFilter) {
	if h, _, ok := reg.urls.Lookup(path); ok {
		url = h.Filters()
	}
	if h, ok := reg.named[handlerName]; ok {
		named = h.Filters()
	}
	return url, named
}
