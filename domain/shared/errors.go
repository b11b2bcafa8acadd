/*
Package shared - domain-layer error definitions shared by all bounded contexts.

Design principles:
 1. Sentinel errors classify failures for errors.Is() checks
 2. DomainError captures the call stack at creation time but formats it lazily
 3. Domain errors carry no transport concepts (no HTTP status codes)
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Sentinel errors
// ============================================================================

var (
	// ErrNotFound a referenced entity is absent
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput a value object was constructed from malformed input.
	// Always a caller problem, never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBusinessRule an aggregate invariant or policy was violated
	ErrBusinessRule = errors.New("business rule violation")

	// ErrConflict resource conflict (concurrent modification, unique constraint)
	ErrConflict = errors.New("conflict")
)

// ============================================================================
// Domain error struct
// ============================================================================

// DomainError carries business context plus the stack of the point of failure.
// Supports errors.Is() via the wrapped sentinel and errors.As() via the type.
type DomainError struct {
	// Err underlying sentinel, used by errors.Is()
	Err error

	// Entity name of the entity the error concerns ("product", "order")
	Entity string

	// Message human-readable description
	Message string

	// Field optional field name for validation errors
	Field string

	// stack call frames captured at creation, formatted on demand
	stack []uintptr
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Stack formats the captured stack, only called when logging.
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// ============================================================================
// Stack capture helpers
// ============================================================================

// CaptureStack captures the current call stack.
// skip is the number of frames to drop (usually 3: Callers, CaptureStack, NewXxxError).
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, filtering runtime internals, max 10 frames.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) > 10 {
			break
		}
	}
	return result
}

// ============================================================================
// Constructors
// ============================================================================

// NewNotFoundError creates a "not found" domain error for the given entity.
func NewNotFoundError(entity, id string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %s not found", entity, id),
		stack:   CaptureStack(3),
	}
}

// NewValidationError creates a validation error for a malformed value object field.
func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewBusinessRuleError creates an invariant-violation error.
func NewBusinessRuleError(entity, reason string) error {
	return &DomainError{
		Err:     ErrBusinessRule,
		Entity:  entity,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

// NewConflictError creates a conflict error.
func NewConflictError(entity, message string) error {
	return &DomainError{
		Err:     ErrConflict,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stacker interface
// ============================================================================

// Stacker is implemented by errors that carry a formatted call stack.
// The API layer uses it to extract the point-of-failure stack for logging.
type Stacker interface {
	Stack() []string
}
