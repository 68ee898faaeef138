package models

import (
	"time"
)

// RupeeAmount is an amount in whole rupees (major unit). PaiseAmount is the
// same value in paise (minor unit); the Razorpay API speaks paise only.
// Conversion between the two happens through ToPaise/ToRupees and nowhere else.
type RupeeAmount int64

type PaiseAmount int64

// ToPaise converts rupees to paise for the gateway boundary.
func (r RupeeAmount) ToPaise() PaiseAmount {
	return PaiseAmount(r) * 100
}

// ToRupees converts paise back to whole rupees, truncating sub-rupee paise.
func (p PaiseAmount) ToRupees() RupeeAmount {
	return RupeeAmount(p / 100)
}

// Top-up amount bounds. One bound, two units: MinTopUpRupees.ToPaise() ==
// MinOrderPaise and likewise for the maximum.
const (
	MinTopUpRupees RupeeAmount = 1
	MaxTopUpRupees RupeeAmount = 200000

	MinOrderPaise PaiseAmount = 100
	MaxOrderPaise PaiseAmount = 20000000
)

// Payment method constants
const (
	MethodUPI        = "UPI"
	MethodNetbanking = "NETBANKING"
	MethodCard       = "CARD"
	MethodWallet     = "WALLET"
)

// ValidMethod reports whether method is one of the four supported payment
// methods. The method is informational only and never changes verification.
func ValidMethod(method string) bool {
	switch method {
	case MethodUPI, MethodNetbanking, MethodCard, MethodWallet:
		return true
	}
	return false
}

// TransactionStatus constants
const (
	TransactionStatusPending = "PENDING"
	TransactionStatusSuccess = "SUCCESS"
	TransactionStatusFailed  = "FAILED"
)

// TopUpRequest is the user-facing top-up intent. Amount is in rupees; the
// gateway layer converts to paise at the order-creation boundary.
type TopUpRequest struct {
	Amount   RupeeAmount `json:"amount"`
	Currency string      `json:"currency"`
	UserID   string      `json:"userId"`
	Method   string      `json:"method"`
}

// PaymentOrder mirrors the gateway's order record. The gateway is the system
// of record for its status; this struct is never mutated after creation.
type PaymentOrder struct {
	ID        string      `json:"id"`
	Amount    PaiseAmount `json:"amount"`
	Currency  string      `json:"currency"`
	Receipt   string      `json:"receipt"`
	Status    string      `json:"status"`
	CreatedAt int64       `json:"created_at"`
}

// Transaction is the local record of one top-up attempt. It is created
// PENDING right after order creation and transitions to SUCCESS or FAILED
// exactly once when the checkout flow resolves.
type Transaction struct {
	ID         string      `gorm:"primaryKey" json:"id"`
	OrderID    string      `gorm:"uniqueIndex" json:"orderId"`
	PaymentID  string      `json:"paymentId,omitempty"`
	Amount     RupeeAmount `json:"amount"`
	Currency   string      `json:"currency"`
	Status     string      `json:"status"`
	Method     string      `json:"method"`
	Timestamp  time.Time   `json:"timestamp"`
	ResolvedAt *time.Time  `json:"resolvedAt,omitempty"`
	UserID     string      `gorm:"index" json:"userId"`
	Receipt    string      `json:"receipt"`
	FailReason string      `json:"failReason,omitempty"`
}

// Resolved reports whether the transaction reached a terminal state.
func (t *Transaction) Resolved() bool {
	return t.Status == TransactionStatusSuccess || t.Status == TransactionStatusFailed
}

// AccountBalance is a read model over the ledger: the sum of all SUCCESS
// top-ups for a user.
type AccountBalance struct {
	UserID      string      `json:"userId"`
	Balance     RupeeAmount `json:"balance"`
	Currency    string      `json:"currency"`
	LastUpdated time.Time   `json:"lastUpdated"`
}
