package store

import (
	"context"
	"sync"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
)

// MemoryLedger is the default in-process ledger. State does not survive a
// restart; that is an accepted property of this deployment, not a bug.
type MemoryLedger struct {
	mu sync.RWMutex

	// Transactions by ID, plus insertion order for newest-first reads.
	txns    map[string]models.Transaction
	byOrder map[string]string // orderID -> transaction ID
	order   []string          // transaction IDs, oldest first
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		txns:    make(map[string]models.Transaction),
		byOrder: make(map[string]string),
		order:   make([]string, 0, 64),
	}
}

func (m *MemoryLedger) Record(ctx context.Context, txn models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byOrder[txn.OrderID]; ok {
		return ErrDuplicateOrder
	}
	if txn.Status == "" {
		txn.Status = models.TransactionStatusPending
	}
	m.txns[txn.ID] = txn
	m.byOrder[txn.OrderID] = txn.ID
	m.order = append(m.order, txn.ID)
	return nil
}

func (m *MemoryLedger) MarkResolved(ctx context.Context, orderID, status, paymentID, failReason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byOrder[orderID]
	if !ok {
		return ErrTxnNotFound
	}
	txn := m.txns[id]
	if txn.Resolved() {
		return ErrTxnResolved
	}

	now := time.Now()
	txn.Status = status
	txn.ResolvedAt = &now
	if status == models.TransactionStatusSuccess {
		txn.PaymentID = paymentID
	} else {
		txn.FailReason = failReason
	}
	m.txns[id] = txn
	return nil
}

func (m *MemoryLedger) ByID(ctx context.Context, id string) (*models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	txn, ok := m.txns[id]
	if !ok {
		return nil, ErrTxnNotFound
	}
	return &txn, nil
}

func (m *MemoryLedger) ByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byOrder[orderID]
	if !ok {
		return nil, ErrTxnNotFound
	}
	txn := m.txns[id]
	return &txn, nil
}

func (m *MemoryLedger) ByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Transaction, 0, 8)
	for i := len(m.order) - 1; i >= 0; i-- {
		txn := m.txns[m.order[i]]
		if txn.UserID == userID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (m *MemoryLedger) Balance(ctx context.Context, userID string) (models.AccountBalance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bal := models.AccountBalance{UserID: userID, Currency: "INR"}
	for _, id := range m.order {
		txn := m.txns[id]
		if txn.UserID != userID || txn.Status != models.TransactionStatusSuccess {
			continue
		}
		bal.Balance += txn.Amount
		if txn.ResolvedAt != nil && txn.ResolvedAt.After(bal.LastUpdated) {
			bal.LastUpdated = *txn.ResolvedAt
		}
	}
	return bal, nil
}
