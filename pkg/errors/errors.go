package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrUnauthorized
	ErrForbidden
	ErrConflict
	ErrInsufficientFunds
	ErrPaymentVerification
	ErrTransactionAborted
	ErrInternal
)

// ConflictReason identifies which availability condition failed. The order
// of declaration matches the resolver's failure priority.
type ConflictReason string

const (
	ReasonClosedDay         ConflictReason = "closed_day"
	ReasonOutsideHours      ConflictReason = "outside_working_hours"
	ReasonBreakOverlap      ConflictReason = "break_overlap"
	ReasonNoStaffConfigured ConflictReason = "no_staff_configured"
	ReasonStaffUnavailable  ConflictReason = "no_staff_at_time"
	ReasonSlotTaken         ConflictReason = "slot_taken"
	ReasonInvalidTransition ConflictReason = "invalid_status_transition"
)

// Window carries the clock bounds of the schedule window or break that
// blocked a request, so callers can suggest an alternative slot.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label,omitempty"`
}

// AppError represents an application error
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Reason  ConflictReason `json:"reason,omitempty"`
	Window  *Window        `json:"window,omitempty"`
	Err     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code to an HTTP status for the error middleware.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrValidation:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrInsufficientFunds, ErrPaymentVerification:
		return http.StatusUnprocessableEntity
	case ErrTransactionAborted:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func Conflict(reason ConflictReason, message string, window *Window) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Reason:  reason,
		Window:  window,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func InsufficientFunds(message string) *AppError {
	return &AppError{
		Code:    ErrInsufficientFunds,
		Message: message,
	}
}

func PaymentVerification(message string) *AppError {
	return &AppError{
		Code:    ErrPaymentVerification,
		Message: message,
	}
}

// TransactionAborted wraps a store-level abort. Safe to retry from scratch.
func TransactionAborted(err error) *AppError {
	return &AppError{
		Code:    ErrTransactionAborted,
		Message: "transaction aborted",
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// Is reports whether err is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError unwraps err to an *AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
