package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies planning failures for the callers that must map them
// to exit codes or HTTP statuses.
type ErrorKind int

// Planning error kinds.
const (
	ErrKindInternal ErrorKind = iota
	ErrKindInvalidInput
	ErrKindInfeasibleWindow
	ErrKindCapacityExceeded
)

// String returns the wire name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidInput:
		return "invalid_input"
	case ErrKindInfeasibleWindow:
		return "infeasible_window"
	case ErrKindCapacityExceeded:
		return "capacity_exceeded"
	default:
		return "internal_error"
	}
}

// PlanningError is a typed failure raised by the planning pipeline.
type PlanningError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *PlanningError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause to errors.Is/As.
func (e *PlanningError) Unwrap() error {
	return e.Err
}

// NewInvalidInput builds an InvalidInput error.
func NewInvalidInput(format string, args ...any) *PlanningError {
	return &PlanningError{Kind: ErrKindInvalidInput, Msg: fmt.Sprintf(format, args...)}
}

// NewInfeasibleWindow builds an InfeasibleWindow error.
func NewInfeasibleWindow(format string, args ...any) *PlanningError {
	return &PlanningError{Kind: ErrKindInfeasibleWindow, Msg: fmt.Sprintf(format, args...)}
}

// NewInternal wraps an unexpected failure.
func NewInternal(msg string, err error) *PlanningError {
	return &PlanningError{Kind: ErrKindInternal, Msg: msg, Err: err}
}

// KindOf extracts the error kind, defaulting to internal for untyped errors.
func KindOf(err error) ErrorKind {
	var pe *PlanningError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ErrKindInternal
}
