package fetcher

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist upstream.
	ErrNotFound = errors.New("record not found")

	// ErrCacheUnavailable indicates the cache store rejected an operation.
	// Callers treat it as a miss, never as a fetch failure.
	ErrCacheUnavailable = errors.New("cache unavailable")
)
