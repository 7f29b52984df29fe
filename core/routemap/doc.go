// Package routemap implements the pattern table the dispatcher resolves
// request paths against. Patterns are either exact (matched by full string
// equality) or prefix patterns (matched whenever the pattern is a proper
// prefix of the path). More specific patterns nest beneath broader prefix
// patterns as detalizations and are always tried first during lookup, so the
// most specific registration wins.
//
// A table is built single-threaded at application load time, then frozen with
// Finalize. After that it is immutable and safe for concurrent lookups from
// any number of request goroutines without locking.
//
//	t := routemap.New[string]()
//	t.Add("/app", false, "app")      // from "/app/*"
//	t.Add("/app/admin", false, "admin")
//	t.Add("/app/login", true, "login")
//	t.Finalize()
//
//	v, kind, ok := t.Lookup("/app/admin/users") // "admin", MatchPrefix, true
//
// The reserved pattern "/" registered as a prefix is the catch-all: it is
// stored outside the tree and answers only when nothing else matches.
package routemap
