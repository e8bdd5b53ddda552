package directory

import "errors"

var (
	// ErrUserNotFound is returned when the directory has no user for the id.
	ErrUserNotFound = errors.New("user not found in directory")

	// ErrServiceNotFound is returned when the directory has no service for the id.
	ErrServiceNotFound = errors.New("service not found in directory")

	// ErrUnavailable is returned for transport failures and unexpected responses,
	// so callers can degrade instead of failing a whole listing.
	ErrUnavailable = errors.New("directory unavailable")
)
