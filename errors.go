package emailkit

import "errors"

var (
	// ErrUserDataUnavailable indicates the primary user record could not be
	// fetched. It is the one data failure that aborts a render; every other
	// source degrades to fallback values.
	ErrUserDataUnavailable = errors.New("user data unavailable")

	// ErrNoUserIDs indicates a batch render was requested with an empty
	// recipient list.
	ErrNoUserIDs = errors.New("no user ids provided")
)
