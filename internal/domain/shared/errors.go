// Package shared contains common domain types, errors and events
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidID       = errors.New("invalid ID")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// State errors
	ErrInvalidState = errors.New("invalid state")
)

// Scheduling error kinds. Kinds that refine a base kind wrap it, so
// errors.Is(ErrClassroomOccupied, ErrScheduleConflict) holds.
var (
	ErrScheduleConflict  = errors.New("schedule conflict")
	ErrClassroomOccupied = fmt.Errorf("%w: classroom occupied", ErrScheduleConflict)
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidGrade      = fmt.Errorf("%w: invalid grade", ErrValueOutOfRange)
	ErrAlreadyAssigned   = errors.New("already assigned")
	ErrAlreadyEnrolled   = fmt.Errorf("%w: already enrolled", ErrAlreadyExists)
	ErrNoTimeSlot        = fmt.Errorf("%w: no time slot", ErrInvalidState)
	ErrNotEnrolled       = fmt.Errorf("%w: not enrolled", ErrInvalidState)
	ErrInvalidTimeSlot   = fmt.Errorf("%w: invalid time slot", ErrInvalidInput)
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "course", "classroom", "student"
	Op      string // Operation that failed, e.g., "Enroll", "AssignClassroom"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// Errorf creates a new domain error with a formatted message.
func Errorf(domain, op string, kind error, format string, args ...any) *DomainError {
	return NewDomainError(domain, op, kind, fmt.Sprintf(format, args...))
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsConflict reports whether the error is a scheduling or assignment conflict,
// i.e. the request was well formed but collides with the current state.
func IsConflict(err error) bool {
	return errors.Is(err, ErrScheduleConflict) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrAlreadyAssigned) ||
		errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}

// IsInvalidState checks if the operation is not allowed in the current state.
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}
