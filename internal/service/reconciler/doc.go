// Package reconciler guarantees that, on exit, either the managed tool is
// installed at the latest known version or an error is reported.
//
// A pass checks host prerequisites, resolves the tool, reads its version,
// compares it against the release feed, and downloads and provisions the
// latest bundle when the tool is absent or stale. Downloads stage through a
// configured directory and are removed on every exit path.
package reconciler
