package config

import "errors"

var (
	// ErrParse is returned when environment values cannot be parsed into the struct.
	ErrParse = errors.New("failed to parse environment config")

	// ErrNilPointer is returned when Load receives a nil destination.
	ErrNilPointer = errors.New("nil config pointer")
)
