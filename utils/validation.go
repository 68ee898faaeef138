package utils

import (
	"fmt"
	"strings"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
)

// ValidateTopUpRequest rejects invalid top-up requests before any order
// creation cost is incurred. It has no side effects: a nil return means the
// request passes through unchanged.
func ValidateTopUpRequest(req models.TopUpRequest) *AppError {
	if strings.TrimSpace(req.UserID) == "" ||
		strings.TrimSpace(req.Currency) == "" ||
		strings.TrimSpace(req.Method) == "" ||
		req.Amount == 0 {
		return ValidationFailed(ReasonMissingFields, "Missing required fields")
	}
	if !models.ValidMethod(req.Method) {
		return ValidationFailed(ReasonInvalidMethod,
			fmt.Sprintf("Invalid payment method: %s", req.Method))
	}
	if req.Amount < models.MinTopUpRupees {
		return ValidationFailed(ReasonAmountTooLow,
			fmt.Sprintf("Minimum amount is ₹%d", models.MinTopUpRupees))
	}
	if req.Amount > models.MaxTopUpRupees {
		return ValidationFailed(ReasonAmountTooHigh, "Maximum amount is ₹2,00,000")
	}
	return nil
}

// ValidateOrderAmount enforces the same bound at the order-creation boundary,
// where the amount has already been converted to paise.
func ValidateOrderAmount(amount models.PaiseAmount) *AppError {
	if amount < models.MinOrderPaise {
		return ValidationFailed(ReasonAmountTooLow, "Minimum amount is ₹1")
	}
	if amount > models.MaxOrderPaise {
		return ValidationFailed(ReasonAmountTooHigh, "Maximum amount is ₹2,00,000")
	}
	return nil
}
