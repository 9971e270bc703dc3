// Package engine implements the imperative editor engine driven by the
// binding package.
//
// A View owns a live, mutable editing session bound to a Container. Its
// document, selection, and configuration live in an immutable State that is
// replaced by every applied Transaction. Configuration is an ordered list of
// Extension fragments (facet values, state fields, view plugins, groups);
// later fragments win for single-valued facets.
//
// All View methods must be called from one goroutine (the host's event loop).
// Deferred work goes through a Scheduler, which hands results back to that
// goroutine.
package engine
