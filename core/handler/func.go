package handler

import "net/http"

// HandlerFunc adapts a plain function to the Handler interface for handlers
// that need no init parameters.
type HandlerFunc func(w http.ResponseWriter, r *http.Request)

// Init implements Handler. It is a no-op.
func (HandlerFunc) Init(Config) error { return nil }

// Handle implements Handler by calling the wrapped function.
func (f HandlerFunc) Handle(w http.ResponseWriter, r *http.Request) { f(w, r) }

// FilterFunc adapts a plain function to the Filter interface for filters
// that need no init parameters.
type FilterFunc func(w http.ResponseWriter, r *http.Request, chain Chain)

// Init implements Filter. It is a no-op.
func (FilterFunc) Init(Config) error { return nil }

// Filter implements Filter by calling the wrapped function.
func (f FilterFunc) Filter(w http.ResponseWriter, r *http.Request, chain Chain) { f(w, r, chain) }
