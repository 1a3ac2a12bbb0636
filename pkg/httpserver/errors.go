package httpserver

import "errors"

var (
	// ErrServerStart indicates the listener failed to start or exited abnormally.
	ErrServerStart = errors.New("http server failed")
	// ErrServerShutdown indicates graceful shutdown did not complete in time.
	ErrServerShutdown = errors.New("http server shutdown failed")
)
