// Package dispatch orchestrates request resolution for one deployed
// application: it maps an incoming path to a registered handler, assembles
// the applicable filter chain, executes it, and serves per-client session
// state.
//
// An application is assembled single-threaded at load time from deployment
// descriptor tuples:
//
//	d := dispatch.New()
//	d.RegisterHandler("users", newUsersHandler, handler.Config{"page_size": "50"})
//	d.RegisterFilter("audit", newAuditFilter, nil)
//	d.MapHandler("/users/*", "users")
//	d.MapFilterURL("/*", "audit", 0)
//	if err := d.Finalize(); err != nil {
//		log.Fatal(err)
//	}
//	http.ListenAndServe(addr, d)
//
// After Finalize the routing structures are immutable, so request goroutines
// resolve routes without locking; handler and filter instances themselves are
// constructed lazily on first use by their factories.
//
// Pattern forms follow the deployment descriptor conventions: a trailing "*"
// marks a prefix pattern ("/app/*" matches everything under /app/), "*.ext"
// routes by extension through a side map, and everything else matches
// exactly. Resolution precedence is exact, then extension, then longest
// prefix, then the "/*" catch-all, then the default handler.
//
// Session state rides the CSESSIONID cookie (configurable): Session returns
// the live session for the requesting client, transparently creating one when
// the cookie is absent, expired, or bound to a different client.
package dispatch
