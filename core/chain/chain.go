package chain

import (
	"net/http"

	"github.com/webfold/dispatch/core/factory"
	"github.com/webfold/dispatch/core/handler"
)

// FailFunc handles a filter whose factory is permanently unavailable. The
// chain stops; the func owns the response.
type FailFunc func(w http.ResponseWriter, r *http.Request, filterName string, err error)

// Chain executes the merged filter sequence of one request and terminates in
// the resolved handler. It is stateful and single-use: create one per request
// and never share it across requests.
type Chain struct {
	url   []MappedFilter
	named []MappedFilter
	ui    int
	ni    int

	invoked map[*factory.Lazy[handler.Filter]]struct{}
	target  handler.Handler
	fail    FailFunc
}

// New creates a chain over the two pre-sorted filter lists ending in target.
// fail may be nil, in which case an unavailable filter answers 503.
func New(url, named []MappedFilter, target handler.Handler, fail FailFunc) *Chain {
	if fail == nil {
		fail = func(w http.ResponseWriter, r *http.Request, _ string, _ error) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		}
	}
	return &Chain{
		url:     url,
		named:   named,
		invoked: make(map[*factory.Lazy[handler.Filter]]struct{}, len(url)+len(named)),
		target:  target,
		fail:    fail,
	}
}

// Next advances to the next filter in combined declaration order or, when
// both lists are exhausted, invokes the handler. A filter already invoked
// through the other mapping dimension is skipped.
func (c *Chain) Next(w http.ResponseWriter, r *http.Request) {
	for {
		f, ok := c.advance()
		if !ok {
			c.target.Handle(w, r)
			return
		}
		if _, seen := c.invoked[f.Factory]; seen {
			continue
		}
		c.invoked[f.Factory] = struct{}{}

		instance, err := f.Factory.Get()
		if err != nil {
			// A filter may carry security policy; failing open by
			// skipping it is not an option.
			c.fail(w, r, f.Name, err)
			return
		}
		instance.Filter(w, r, c)
		return
	}
}

// advance yields the unconsumed filter with the smallest declaration order,
// preferring the URL dimension on ties.
func (c *Chain) advance() (MappedFilter, bool) {
	switch {
	case c.ui < len(c.url) && c.ni < len(c.named):
		if c.url[c.ui].Order <= c.named[c.ni].Order {
			c.ui++
			return c.url[c.ui-1], true
		}
		c.ni++
		return c.named[c.ni-1], true
	case c.ui < len(c.url):
		c.ui++
		return c.url[c.ui-1], true
	case c.ni < len(c.named):
		c.ni++
		return c.named[c.ni-1], true
	default:
		return MappedFilter{}, false
	}
}
