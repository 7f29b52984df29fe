// Package handler defines the capability interfaces consumed by the dispatch
// core: Handler for request endpoints, Filter for chain-of-responsibility
// links, and Chain for the continuation a filter uses to pass the request
// along.
//
// Instances are constructed lazily by factories (see core/factory) and shared
// by all concurrent requests for the lifetime of the application, so Handle
// and Filter implementations must be reentrant. Init runs exactly once per
// instance with the parameters declared for it in the deployment descriptor.
//
// Handlers and filters that carry no configuration can be written as plain
// functions via HandlerFunc and FilterFunc:
//
//	d.RegisterHandler("hello", func() (handler.Handler, error) {
//		return handler.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//			w.Write([]byte("hello"))
//		}), nil
//	}, nil)
package handler
