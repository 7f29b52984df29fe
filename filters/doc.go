// Package filters ships the stock filter implementations of the dispatch
// core. Each filter implements handler.Filter and reads its settings from the
// init parameters declared for it in the deployment descriptor, so they can
// be registered directly:
//
//	d.RegisterFilter("ratelimit", filters.NewRateLimit, handler.Config{
//		"rps":        "100",
//		"burst":      "200",
//		"per_client": "true",
//	})
//	d.MapFilterURL("/api/*", "ratelimit", 0)
//
// One filter instance is shared by all concurrent requests; every filter in
// this package is reentrant.
package filters
