package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies one of the five failure kinds that can leave the
// order placement pipeline. The set is closed: every failure is
// classified into one of these before reaching a transport adapter.
type ErrorCode string

const (
	CodeInvalidOrder         ErrorCode = "INVALID_ORDER"
	CodeInvalidState         ErrorCode = "INVALID_STATE"
	CodeDomainViolation      ErrorCode = "DOMAIN_VIOLATION"
	CodeInsufficientStock    ErrorCode = "INSUFFICIENT_STOCK"
	CodeOrderPlacementFailed ErrorCode = "ORDER_PLACEMENT_FAILED"
)

// OrderError is the closed failure taxonomy of the order core. The Code
// discriminates the kind; kind-specific fields are populated only for
// the kinds that define them.
type OrderError struct {
	Code    ErrorCode
	Message string

	// UnavailableSKUs is set for CodeInsufficientStock, in command
	// declaration order.
	UnavailableSKUs []string

	// CurrentState and TargetState are set for CodeInvalidState.
	CurrentState OrderStatus
	TargetState  OrderStatus

	// Cause carries the wrapped infrastructure failure for
	// CodeOrderPlacementFailed and CodeDomainViolation.
	Cause error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *OrderError) Unwrap() error {
	return e.Cause
}

// NewInvalidOrder reports structurally bad input data.
func NewInvalidOrder(message string) *OrderError {
	return &OrderError{Code: CodeInvalidOrder, Message: message}
}

// NewInvalidState reports an illegal status transition attempt.
func NewInvalidState(current, target OrderStatus) *OrderError {
	return &OrderError{
		Code:         CodeInvalidState,
		Message:      fmt.Sprintf("cannot transition from %s to %s", current, target),
		CurrentState: current,
		TargetState:  target,
	}
}

// NewDomainViolation reports an invariant breach during construction.
func NewDomainViolation(message string, cause error) *OrderError {
	return &OrderError{Code: CodeDomainViolation, Message: message, Cause: cause}
}

// NewInsufficientStock reports the SKUs that could not be reserved,
// preserving their order in the original command.
func NewInsufficientStock(skus []string) *OrderError {
	return &OrderError{
		Code:            CodeInsufficientStock,
		Message:         fmt.Sprintf("insufficient stock for: %s", strings.Join(skus, ", ")),
		UnavailableSKUs: skus,
	}
}

// NewPlacementFailed wraps an infrastructure failure that aborted the
// pipeline after validation.
func NewPlacementFailed(message string, cause error) *OrderError {
	return &OrderError{Code: CodeOrderPlacementFailed, Message: message, Cause: cause}
}

// AsOrderError extracts an OrderError from an error chain.
func AsOrderError(err error) (*OrderError, bool) {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}
