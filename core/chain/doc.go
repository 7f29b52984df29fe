// Package chain assembles and executes the per-request filter pipeline.
//
// Filters reach a request through two independent mapping dimensions: URL
// patterns and handler names. Each dimension yields a list sorted by the
// global declaration order from the deployment descriptor. At execution time
// the two lists are interleaved into a single ascending-order sequence, and a
// filter that appears in both dimensions runs exactly once (identity-based
// deduplication on its factory).
//
// A Registry holds both mapping dimensions for one deployed application. The
// URL dimension reuses the pattern table from core/routemap, so filters
// mapped to a broader pattern are inherited by every more specific pattern
// nested beneath it, catch-all filters included. Registries are built at load
// time, frozen with Finalize, and read-only afterwards.
//
// A Chain is created per request and is single-use: each filter receives the
// chain and decides whether to call Next, which advances to the following
// filter or, when both lists are exhausted, to the resolved handler. Not
// calling Next short-circuits the request.
package chain
