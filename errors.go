package logslice

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is reported when no line in the file carries the target
	// date key. It is an outcome, not a failure: the file was mapped and
	// searched successfully and the date is simply absent.
	ErrNotFound = errors.New("logslice: date not found")

	// ErrInvalidDate is returned when the target date does not match the
	// YYYY-MM-DD lexical pattern.
	ErrInvalidDate = errors.New("logslice: invalid date, expected YYYY-MM-DD")
)

// DecodeError indicates that a line's bytes are not valid UTF-8 text.
//
// During forward extraction it aborts the run; lines already written
// before the corrupt one are left intact. During the binary-search phase
// decode failures are never surfaced (see FirstOccurrence).
type DecodeError struct {
	// Offset is the byte offset of the start of the undecodable line.
	Offset int
	cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("logslice: undecodable line at offset %d", e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.cause }
