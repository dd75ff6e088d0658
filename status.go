/*
@Description: Status codes and error wrapping for the SizeCeph erasure-code plugin
@Language: Go 1.23.4
*/

package sizeceph

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the neutral result code shared across the plugin's interface,
// modeled after the host's own status taxonomy.
type Status int

const (
	// StatusOK indicates success.
	StatusOK Status = iota
	// StatusInvalid indicates a precondition on caller input was not met.
	StatusInvalid
	// StatusNotFound indicates a required resource (library, shard) is missing.
	StatusNotFound
	// StatusNotSupported indicates the operation is defined but not implemented
	// here, or the erasure pattern presented is not recoverable.
	StatusNotSupported
	// StatusIO indicates the native codec reported a downstream failure.
	StatusIO
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusInvalid:
		return "INVALID"
	case StatusNotFound:
		return "NOT_FOUND"
	case StatusNotSupported:
		return "NOT_SUPPORTED"
	case StatusIO:
		return "IO"
	default:
		return "UNKNOWN"
	}
}

// CodecError pairs a Status with the underlying cause, wrapped with a stack
// trace so callers that do log can see the full chain without the data path
// itself having to log anything.
type CodecError struct {
	Status Status
	cause  error
}

func (e *CodecError) Error() string {
	if e.cause == nil {
		return e.Status.String()
	}
	return fmt.Sprintf("%s: %v", e.Status, e.cause)
}

func (e *CodecError) Unwrap() error {
	return e.cause
}

// newStatusErr builds a CodecError from a plain message, attaching a stack
// trace at the point of failure.
func newStatusErr(status Status, msg string) *CodecError {
	return &CodecError{Status: status, cause: errors.New(msg)}
}

// wrapStatusErr builds a CodecError from an existing error, recording a
// stack trace at this call site; any stack err already carries stays in
// the wrapped chain.
func wrapStatusErr(status Status, err error) *CodecError {
	if err == nil {
		return nil
	}
	return &CodecError{Status: status, cause: errors.WithStack(err)}
}

// StatusOf extracts the Status from err, defaulting to StatusIO for any
// error that did not originate from this package.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return StatusIO
}
