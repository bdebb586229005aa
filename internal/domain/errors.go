package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing string resource.
	ErrNotFound = errors.New("string does not exist")
	// ErrAlreadyExists signals a duplicate string resource.
	ErrAlreadyExists = errors.New("string already exists")
	// ErrInvalidValue signals a malformed string payload.
	ErrInvalidValue = errors.New("invalid value")
	// ErrBatchTooLarge signals a batch exceeding the configured limit.
	ErrBatchTooLarge = errors.New("batch too large")

	// ErrUnparseableQuery signals free text that yields no criteria.
	ErrUnparseableQuery = errors.New("unable to parse query")
	// ErrInvalidFilter signals a predicate violating its own constraints.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrConflictingFilters signals individually valid but inconsistent predicates.
	ErrConflictingFilters = errors.New("conflicting filters")
)

// ParseError wraps ErrUnparseableQuery with the reason extraction failed.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnparseableQuery.Error(), e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrUnparseableQuery }

// NewParseError creates a parse error.
func NewParseError(reason string) error {
	return &ParseError{Reason: reason}
}

// ValidationError wraps ErrInvalidFilter with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidFilter.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidFilter.Error(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidFilter }

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError wraps ErrConflictingFilters with a description of the conflict.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflictingFilters.Error(), e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflictingFilters }

// NewConflictError creates a conflict error.
func NewConflictError(reason string) error {
	return &ConflictError{Reason: reason}
}
