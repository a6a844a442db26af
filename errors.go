package dotignore

import "errors"

var (
	// ErrInvalidPattern is returned when a pattern is empty or whitespace.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidArgument is returned when a query path is empty or whitespace.
	ErrInvalidArgument = errors.New("invalid argument")
)
