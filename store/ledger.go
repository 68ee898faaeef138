// Package store tracks the lifecycle of top-up attempts. The ledger is the
// only shared mutable state in the payment core; every implementation must be
// safe for concurrent use.
package store

import (
	"context"
	"errors"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
)

var (
	// ErrTxnNotFound is returned when no transaction matches the given key.
	ErrTxnNotFound = errors.New("transaction not found")
	// ErrTxnResolved is returned when a transaction already reached a
	// terminal state. Terminal states never transition again.
	ErrTxnResolved = errors.New("transaction already resolved")
	// ErrDuplicateOrder is returned when an order already has a
	// transaction; one attempt gets exactly one order and one transaction.
	ErrDuplicateOrder = errors.New("order already has a transaction")
)

// TransactionLedger records top-up attempts and their resolutions.
//
// Record inserts a new PENDING transaction. MarkResolved transitions the
// transaction for orderID from PENDING to SUCCESS (with the gateway payment
// id) or FAILED, exactly once. Reads return transactions newest-first.
type TransactionLedger interface {
	Record(ctx context.Context, txn models.Transaction) error
	MarkResolved(ctx context.Context, orderID, status, paymentID, failReason string) error
	ByID(ctx context.Context, id string) (*models.Transaction, error)
	ByOrderID(ctx context.Context, orderID string) (*models.Transaction, error)
	ByUser(ctx context.Context, userID string) ([]models.Transaction, error)
	Balance(ctx context.Context, userID string) (models.AccountBalance, error)
}
