package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-checkable reason codes returned alongside human-readable messages.
// Validation reasons are recoverable by correcting input; the rest are
// terminal for the attempt they belong to.
const (
	ReasonMissingFields         = "MISSING_FIELDS"
	ReasonAmountTooLow          = "AMOUNT_TOO_LOW"
	ReasonAmountTooHigh         = "AMOUNT_TOO_HIGH"
	ReasonInvalidMethod         = "INVALID_METHOD"
	ReasonOrderCreationFailed   = "ORDER_CREATION_FAILED"
	ReasonMissingPaymentDetails = "MISSING_PAYMENT_DETAILS"
	ReasonSignatureMismatch     = "SIGNATURE_MISMATCH"
	ReasonPaymentCancelled      = "PAYMENT_CANCELLED"
	ReasonPaymentFailed         = "PAYMENT_FAILED"
)

// AppError represents an application error with an HTTP status code and a
// machine-checkable reason.
type AppError struct {
	Code    int    `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, reason, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}

// ValidationFailed creates a 400 error for a validation reason.
func ValidationFailed(reason, message string) *AppError {
	return NewAppError(http.StatusBadRequest, reason, message, nil)
}

// GatewayFailed creates a 500 error for a gateway failure, keeping the
// underlying gateway error for diagnostics.
func GatewayFailed(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, ReasonOrderCreationFailed, message, err)
}

// VerificationFailed creates a 400 error for a verification reason.
func VerificationFailed(reason, message string) *AppError {
	return NewAppError(http.StatusBadRequest, reason, message, nil)
}

// GetAppError returns the AppError if err is (or wraps) one, nil otherwise.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasReason reports whether err is an AppError with the given reason.
func HasReason(err error, reason string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Reason == reason
	}
	return false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
