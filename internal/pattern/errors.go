package pattern

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned when a pattern cannot be parsed or compiled
	ErrSyntax = errors.New("invalid pattern")
	// ErrDuplicateGroupName is returned when two groups share a name
	ErrDuplicateGroupName = errors.New("duplicate group name")
	// ErrUnknownGroupName is returned when a backreference names a group that does not exist
	ErrUnknownGroupName = errors.New("unknown group name")
)

// SyntaxError describes where and why a pattern was rejected.
type SyntaxError struct {
	Pattern string // pattern as given by the caller
	Offset  int    // rune offset of the problem, -1 when the engine reported it
	Reason  string // human readable cause
	Err     error  // more specific sentinel, if any
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, e.Reason)
	}
	return fmt.Sprintf("invalid pattern %q at position %d: %s", e.Pattern, e.Offset, e.Reason)
}

// Unwrap returns the specific sentinel, or ErrSyntax when there is none.
func (e *SyntaxError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrSyntax
}

// Is reports every SyntaxError as ErrSyntax, in addition to its specific cause.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}
