package gitlab

import "errors"

// Sentinel kinds for client construction and lookups.
var (
	ErrMissingToken    = errors.New("gitlab token cannot be empty")
	ErrMissingUsername = errors.New("gitlab username cannot be empty")
	ErrUserNotFound    = errors.New("gitlab user not found")
)
