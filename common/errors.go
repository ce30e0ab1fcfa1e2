package common

import (
	"errors"
	"fmt"
)

type PlanErrorCode int

const (
	// UnsupportedOperatorError indicates a source operator, join type, or
	// expression kind the target algebra cannot represent. Translation
	// aborts immediately.
	UnsupportedOperatorError PlanErrorCode = iota
	// SchemaMismatchError indicates that a translated child's column count
	// disagrees with what its parent expects. This is a translator bug or
	// an operator combination the translator does not handle.
	SchemaMismatchError
	// NoRootError indicates that a translation root was requested before
	// any node had been translated. Programmer error.
	NoRootError
	// ResourceError indicates an unreadable or unwritable resource path.
	// Resource failures are never retried at this layer.
	ResourceError
	// DuplicateAliasError indicates an attempt to register a plan under an
	// alias that is already taken.
	DuplicateAliasError
	// NoSuchAliasError indicates a request for an alias that is not
	// registered.
	NoSuchAliasError
)

func (ec PlanErrorCode) String() string {
	switch ec {
	case UnsupportedOperatorError:
		return "UnsupportedOperatorError"
	case SchemaMismatchError:
		return "SchemaMismatchError"
	case NoRootError:
		return "NoRootError"
	case ResourceError:
		return "ResourceError"
	case DuplicateAliasError:
		return "DuplicateAliasError"
	case NoSuchAliasError:
		return "NoSuchAliasError"
	}
	return "unknown"
}

// PlanError is the error type for plan translation, registration, and
// execution. It wraps a PlanErrorCode with a detailed message so callers
// can branch on the code while logs keep the context.
type PlanError struct {
	Code      PlanErrorCode
	ErrString string
}

func (e PlanError) Error() string {
	return fmt.Sprintf("err: %s; msg: %s", e.Code.String(), e.ErrString)
}

// NewPlanError builds a PlanError with a formatted message.
func NewPlanError(code PlanErrorCode, format string, args ...any) PlanError {
	return PlanError{Code: code, ErrString: fmt.Sprintf(format, args...)}
}

// IsPlanError reports whether err carries the given code.
func IsPlanError(err error, code PlanErrorCode) bool {
	var pe PlanError
	if !errors.As(err, &pe) {
		return false
	}
	return pe.Code == code
}

// CastError reports that a specific row/column could not be decoded to its
// declared type. It is recoverable at the row level: the execution layer
// decides whether to fail the run or skip and log the row, but the error
// itself always surfaces which column failed and on what bytes.
type CastError struct {
	Column  string // name of the failing column
	Ordinal int    // position of the failing column in the schema
	Raw     []byte // offending raw field, nil when the field was absent
	Target  Type
	Err     error // underlying decode error, nil when the field was absent
}

func (e *CastError) Error() string {
	if e.Raw == nil && e.Err == nil {
		return fmt.Sprintf("cast: column %q (#%d): field missing from row", e.Column, e.Ordinal)
	}
	if e.Column == "" {
		// Literal coercion failures have no column context.
		return fmt.Sprintf("cast: cannot decode %q as %s", e.Raw, e.Target)
	}
	return fmt.Sprintf("cast: column %q (#%d): cannot decode %q as %s", e.Column, e.Ordinal, e.Raw, e.Target)
}

func (e *CastError) Unwrap() error {
	return e.Err
}
