package pasta

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes pasta physics failures.
type ErrorCode string

const (
	// ErrCodeCrisisOverload indicates both entanglement operands were in
	// existential crisis. This is the only code any operation produces.
	ErrCodeCrisisOverload ErrorCode = "CRISIS_OVERLOAD"

	// The remaining codes are reserved. They are declared for the closed
	// error set but no operation produces them.
	ErrCodeSauceDecoherence  ErrorCode = "SAUCE_DECOHERENCE"
	ErrCodeBlackHoleCollapse ErrorCode = "BLACK_HOLE_COLLAPSE"
	ErrCodeUtensilEntangled  ErrorCode = "UTENSIL_ENTANGLEMENT"
	ErrCodeParmesanExhausted ErrorCode = "PARMESAN_EXHAUSTED"
)

// PastaError represents a failure in quantum pasta physics.
//
// It carries a stable code for categorization plus a human-readable
// message. Errors are surfaced to the caller as-is: nothing in this
// package recovers or retries.
type PastaError struct {
	// Code identifies the failure category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *PastaError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCrisisError creates the mutual-crisis entanglement failure.
func NewCrisisError() *PastaError {
	return &PastaError{
		Code:    ErrCodeCrisisOverload,
		Message: "two noodles in existential crisis cannot entangle",
	}
}

// IsCrisisError returns true if the error is a mutual-crisis failure.
// Uses errors.As to handle wrapped errors.
func IsCrisisError(err error) bool {
	var pe *PastaError
	if errors.As(err, &pe) {
		return pe.Code == ErrCodeCrisisOverload
	}
	return false
}
