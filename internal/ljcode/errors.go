// Copyright 2026 The zb Authors
// SPDX-License-Identifier: MIT

package ljcode

import (
	"errors"
	"fmt"
)

// Errors returned by [Decode].
// Decode wraps these, so callers should use [errors.Is] to test for them.
// A truncated input is reported as [io.ErrUnexpectedEOF].
var (
	// ErrMalformedHeader indicates that the input does not start with [Signature].
	ErrMalformedHeader = errors.New("malformed header")
	// ErrInvalidVersion indicates a dump format version other than 2.0 or 2.1.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrInvalidHeaderFlags indicates unknown bits in the header flags.
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	// ErrInvalidPrototypeFlags indicates unknown bits in a prototype's flags.
	ErrInvalidPrototypeFlags = errors.New("invalid prototype flags")
	// ErrInvalidOpcode indicates an opcode number
	// that is out of range for the chunk's version.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInvalidDebugVariable indicates a variable record
	// whose addresses cannot be represented.
	ErrInvalidDebugVariable = errors.New("invalid debug variable")
	// ErrUnsupportedConstant indicates a constant kind that the decoder does not implement:
	// inline tables and 64-bit integer or complex number constants.
	ErrUnsupportedConstant = errors.New("unsupported constant kind")
	// ErrEncoding indicates a string that is not valid UTF-8.
	ErrEncoding = errors.New("invalid utf-8")
	// ErrNarrowing indicates a value that does not fit its destination.
	ErrNarrowing = errors.New("value out of range")
	// ErrInvalidChildReference indicates a child prototype constant
	// with no prototype left to refer to.
	// It is only returned when [DecodeOptions.ResolveChildren] is set.
	ErrInvalidChildReference = errors.New("invalid child prototype reference")
)

// DecodeError records the position at which decoding failed.
type DecodeError struct {
	// Offset is the number of bytes consumed from the input
	// when the failure was detected.
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode luajit chunk: offset %d: %v", e.Offset, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
