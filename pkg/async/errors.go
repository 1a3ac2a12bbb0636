package async

import "errors"

var (
	// ErrTimeout is returned when AwaitWithTimeout exceeds its deadline.
	ErrTimeout = errors.New("async operation timed out")

	// ErrPanicked is returned when the asynchronous function panicked.
	ErrPanicked = errors.New("async operation panicked")
)
