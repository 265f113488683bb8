package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The set is closed: the HTTP boundary maps
// each kind to exactly one response shape and nothing else inspects error
// internals.
type Kind int

const (
	KindInternal Kind = iota
	KindDuplicateValue
	KindNotFound
	KindForbidden
	KindValidationFailed
	KindConflict
)

// Error is the single error type raised by repositories and services.
type Error struct {
	Kind    Kind
	Code    string // stable machine-readable code for the boundary
	Message string
	Value   string              // conflicting value for duplicate errors
	Fields  map[string][]string // per-field messages for validation errors
	Err     error               // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindInternal for anything outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CodeOf returns the stable code of err, or "InternalError" for unclassified
// failures.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Code != "" {
		return e.Code
	}
	return "InternalError"
}

// DuplicatePhone reports a phone number that already exists within the tenant.
func DuplicatePhone(phone string) *Error {
	return &Error{
		Kind:    KindDuplicateValue,
		Code:    "DuplicatePhoneNumber",
		Message: "Phone number already exists within this tenant",
		Value:   phone,
	}
}

// DuplicateAppointment reports a slot collision on (patient, branch, start).
func DuplicateAppointment() *Error {
	return &Error{
		Kind:    KindDuplicateValue,
		Code:    "DuplicateAppointment",
		Message: "An appointment already exists for this patient at the same time and branch",
	}
}

// NotFound reports an absent referenced entity.
func NotFound(resource string, id fmt.Stringer) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NotFound",
		Message: fmt.Sprintf("%s %s was not found", resource, id),
	}
}

// Forbidden reports a caller whose context does not authorize the action.
func Forbidden(message string) *Error {
	if message == "" {
		message = "You do not have permission to perform this action"
	}
	return &Error{Kind: KindForbidden, Code: "Forbidden", Message: message}
}

// Validation reports malformed caller input with per-field messages.
func Validation(fields map[string][]string) *Error {
	return &Error{
		Kind:    KindValidationFailed,
		Code:    "ValidationFailed",
		Message: "One or more validation errors occurred",
		Fields:  fields,
	}
}

// Conflict reports a state conflict not covered by a more specific kind.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: "Conflict", Message: message}
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    "InternalError",
		Message: "An unexpected error occurred",
		Err:     err,
	}
}
