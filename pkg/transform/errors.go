package transform

import "errors"

var (
	// ErrLoadRegistry indicates the registry file could not be read or parsed.
	ErrLoadRegistry = errors.New("failed to load template registry")

	// ErrUnknownRule indicates a registry entry references a rule name that
	// has no implementation.
	ErrUnknownRule = errors.New("unknown enrichment rule")
)
