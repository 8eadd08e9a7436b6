// Package client talks to the wbdash API.
//
// HTTPClient covers the auth, profile and linked-account endpoints.
// ScopedFetcher is used for analytics: every request it builds carries the
// current account selection as wb_lk_ids, sent empty rather than omitted
// when nothing is selected, so the server answers with no data instead of
// everything.
//
// Failures come back as *StatusError for non-2xx responses and wrap
// ErrUnavailable when no response arrived at all. Nothing is retried.
//
// The package also bootstraps the local SQLite store (InitDatabase) and
// probes the server's gRPC health service (HealthProbe).
package client
