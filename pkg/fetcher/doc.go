// Package fetcher implements the schema driven metadata strategy.
//
// A fetch issues one GET per endpoint of a schema concurrently, merges the
// decoded bodies by endpoint name and then walks the schema's pick paths to
// build one record per track element. Endpoint failures and malformed track
// elements degrade the result instead of failing it; only cancellation of
// the caller's context is returned as an error.
package fetcher
