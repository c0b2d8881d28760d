package obsgraph

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Sentinel errors for the marshaling core.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMalformedValue indicates that scalar text did not match the field's
	// declared kind (for example "abc" for an integer field).
	ErrMalformedValue = errors.New("malformed value")

	// ErrMissingRequiredField indicates that a required field was absent from
	// the input tree or map. It is structural and never defaulted away.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrUnknownDiscriminator indicates that a type discriminator had no
	// registered constructor.
	ErrUnknownDiscriminator = errors.New("unknown discriminator")

	// ErrMissingDiscriminator indicates that a polymorphic field carried no
	// type discriminator on read.
	ErrMissingDiscriminator = errors.New("missing discriminator")

	// ErrCacheMiss indicates that an identifier could not be resolved against
	// the identifier store. Callers may treat this as "properties unknown"
	// rather than fatal.
	ErrCacheMiss = errors.New("identifier not found")

	// ErrConflict indicates that an identifier was already bound to a
	// different value and the store was configured to detect conflicts.
	ErrConflict = errors.New("identifier already bound")

	// ErrInvalidDescriptor indicates an entity type was defined with an
	// invalid descriptor set (for example a duplicate wire name).
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)

// Error kinds categorize errors by their type.
const (
	// KindMalformed represents scalar text that does not parse as its kind.
	KindMalformed = "malformed_value"

	// KindMissingField represents a required field absent from the input.
	KindMissingField = "missing_required_field"

	// KindDiscriminator represents polymorphic resolution failures.
	KindDiscriminator = "discriminator"

	// KindCacheMiss represents an unresolved identifier reference.
	KindCacheMiss = "cache_miss"

	// KindConflict represents a duplicate identifier binding.
	KindConflict = "conflict"

	// KindStorage represents identifier store backend failures.
	KindStorage = "storage"

	// KindDefinition represents invalid entity type definitions.
	KindDefinition = "definition"
)

// Error is a structured error type that wraps underlying errors with the
// operation that failed, the offending field, and, where available, the
// source line of the input.
//
// Error implements the error interface and supports error unwrapping,
// making it compatible with errors.Is() and errors.As().
type Error struct {
	// Op is the operation that failed (e.g., "Entity.FromNode", "Store.Get").
	Op string

	// Kind categorizes the error (e.g., KindMalformed, KindCacheMiss).
	Kind string

	// Field is the wire name of the offending field, if any.
	Field string

	// Value is the raw input text that failed to parse, if any.
	Value string

	// Line is the 1-based source line of the offending input, or 0 when the
	// input shape carries no location (maps).
	Line int

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface, returning a formatted message that
// includes the operation, kind, field, and source location when present.
func (e *Error) Error() string {
	msg := fmt.Sprintf("obsgraph: %s (%s)", e.Op, e.Kind)
	if e.Field != "" {
		msg += fmt.Sprintf(": field %q", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" (line %d)", e.Line)
	}
	return msg
}

// Unwrap returns the underlying error, allowing errors.Is() and errors.As()
// to work correctly with wrapped errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error matching for Error, allowing comparison based on the
// underlying error or on another Error's Kind.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// NewMalformedValueError creates an Error for scalar text that does not
// match the declared kind of the named field.
func NewMalformedValueError(op, field, value string, line int, err error) *Error {
	if err == nil {
		err = ErrMalformedValue
	} else if !errors.Is(err, ErrMalformedValue) {
		err = fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	return &Error{Op: op, Kind: KindMalformed, Field: field, Value: value, Line: line, Err: err}
}

// NewMissingFieldError creates an Error for a required field absent from
// the input.
func NewMissingFieldError(op, field string, line int) *Error {
	return &Error{Op: op, Kind: KindMissingField, Field: field, Line: line, Err: ErrMissingRequiredField}
}

// NewUnknownDiscriminatorError creates an Error for a discriminator with no
// registered constructor.
func NewUnknownDiscriminatorError(op, discriminator string) *Error {
	return &Error{Op: op, Kind: KindDiscriminator, Value: discriminator, Err: ErrUnknownDiscriminator}
}

// NewMissingDiscriminatorError creates an Error for a polymorphic field read
// without a discriminator.
func NewMissingDiscriminatorError(op, field string, line int) *Error {
	return &Error{Op: op, Kind: KindDiscriminator, Field: field, Line: line, Err: ErrMissingDiscriminator}
}

// NewCacheMissError creates an Error for an identifier absent from the store.
func NewCacheMissError(op, id string) *Error {
	return &Error{Op: op, Kind: KindCacheMiss, Value: id, Err: ErrCacheMiss}
}

// NewConflictError creates an Error for an identifier already bound to a
// different value.
func NewConflictError(op, id string) *Error {
	return &Error{Op: op, Kind: KindConflict, Value: id, Err: ErrConflict}
}

// NewStorageError creates an Error wrapping an identifier store backend
// failure.
func NewStorageError(op string, err error) *Error {
	return &Error{Op: op, Kind: KindStorage, Err: err}
}

// NewDefinitionError creates an Error for an invalid entity type definition.
func NewDefinitionError(op, field string, err error) *Error {
	if err == nil {
		err = ErrInvalidDescriptor
	}
	return &Error{Op: op, Kind: KindDefinition, Field: field, Err: err}
}

// CloseWithLog attempts to close the provided resource and logs any error
// at warning level. This is intended for use in defer statements so cleanup
// errors are not silently ignored.
//
// The name parameter should describe the resource being closed (e.g.,
// "redis store"). If logger is nil, slog.Default() is used.
func CloseWithLog(closer io.Closer, logger *slog.Logger, name string) {
	if closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close resource",
			"resource", name,
			"error", err)
	}
}
