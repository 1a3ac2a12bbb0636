// Package cache provides a generic, thread-safe LRU cache.
//
// The render engine uses it to hold loaded template documents for the
// lifetime of the process. The cache is bounded so a long-running worker
// that renders many ad-hoc template paths cannot grow without limit, and
// Clear supports the manual cache reset the engine exposes.
package cache
