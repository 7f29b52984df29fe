package handler

import "net/http"

// Config carries the init parameters of a handler or filter, sourced from the
// deployment descriptor of the surrounding container.
type Config map[string]string

// Handler processes a request once the dispatcher has resolved it.
//
// Init is called exactly once, before the first Handle call, by the lazy
// factory that owns the instance. A single instance is shared by all
// concurrent requests; implementations must be safe for concurrent Handle
// calls.
type Handler interface {
	Init(config Config) error
	Handle(w http.ResponseWriter, r *http.Request)
}

// Filter is one link of a request processing chain. Calling chain.Next
// continues to the following filter or, when none remain, to the resolved
// handler. Not calling it short-circuits the pipeline.
type Filter interface {
	Init(config Config) error
	Filter(w http.ResponseWriter, r *http.Request, chain Chain)
}

// Chain is the continuation passed to filters. A chain instance is created
// per request, is stateful and single-use, and must not be shared between
// requests.
type Chain interface {
	Next(w http.ResponseWriter, r *http.Request)
}

// HandlerConstructor builds a handler instance. It is invoked at most once
// per factory, on first use.
type HandlerConstructor func() (Handler, error)

// FilterConstructor builds a filter instance. It is invoked at most once per
// factory, on first use.
type FilterConstructor func() (Filter, error)
