// Package dispatch is a request-dispatch core for building servlet-style
// HTTP applications: named handlers and filters are registered once,
// mapped to URL patterns through a deployment-descriptor-like API, and
// resolved per request with exact, extension, prefix and catch-all
// precedence. Handler and filter instances are constructed lazily, at
// most once, and shared by all concurrent requests; client state lives
// in an in-memory session store bound to the client's IP and user agent.
//
// # Package Organization
//
//	github.com/webfold/dispatch/core/dispatch  - request dispatcher: registration, mapping, resolution, sessions
//	github.com/webfold/dispatch/core/handler   - Handler, Filter and Chain contracts
//	github.com/webfold/dispatch/core/routemap  - nested URL pattern table with exact/prefix/catch-all lookup
//	github.com/webfold/dispatch/core/chain     - per-request filter chain assembly and ordering
//	github.com/webfold/dispatch/core/factory   - lazy at-most-once component construction
//	github.com/webfold/dispatch/core/session   - bounded, expiring session store
//	github.com/webfold/dispatch/core/cache     - access-ordered map underlying the session store
//	github.com/webfold/dispatch/core/config    - type-safe environment variable loading
//	github.com/webfold/dispatch/core/logger    - slog attribute helpers
//	github.com/webfold/dispatch/filters        - builtin filters: request id, logging, rate limit, circuit breaker, metrics, security headers
//	github.com/webfold/dispatch/pkg/clientip   - client IP extraction behind proxies and CDNs
//
// # Quick Start
//
//	d := dispatch.New(dispatch.WithContextPath("/shop"))
//	d.RegisterHandler("catalog", catalog.New, handler.Config{"page_size": "50"})
//	d.RegisterFilter("requestid", filters.NewRequestID, nil)
//	d.MapHandler("/catalog/*", "catalog")
//	d.MapFilterURL("/*", "requestid", 1)
//	d.Finalize()
//	http.ListenAndServe(":8080", d)
package dispatch
