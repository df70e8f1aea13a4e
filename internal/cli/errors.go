package cli

import "errors"

// Error definitions for the cli package
var (
	// ErrInvalidArguments is returned for flags that do not parse
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrFilterWithoutList is returned for --filter without --list-colors
	ErrFilterWithoutList = errors.New("--filter requires --list-colors")
)
