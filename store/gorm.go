package store

import (
	"context"
	"errors"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/models"

	"gorm.io/gorm"
)

// GormLedger backs the ledger with postgres for deployments that need
// transactions to survive restarts. Same interface, same state machine.
type GormLedger struct {
	db *gorm.DB
}

func NewGormLedger(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (g *GormLedger) Record(ctx context.Context, txn models.Transaction) error {
	if txn.Status == "" {
		txn.Status = models.TransactionStatusPending
	}
	var count int64
	if err := g.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("order_id = ?", txn.OrderID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateOrder
	}
	return g.db.WithContext(ctx).Create(&txn).Error
}

// MarkResolved transitions the transaction with a single conditional UPDATE.
// The `status = PENDING` guard makes the transition exactly-once under
// concurrent writers; of two racing resolvers, one moves the row and the
// other matches nothing and gets ErrTxnResolved.
func (g *GormLedger) MarkResolved(ctx context.Context, orderID, status, paymentID, failReason string) error {
	res := g.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("order_id = ? AND status = ?", orderID, models.TransactionStatusPending).
		Updates(resolutionUpdates(status, paymentID, failReason))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := g.db.WithContext(ctx).Model(&models.Transaction{}).
			Where("order_id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTxnNotFound
		}
		return ErrTxnResolved
	}
	return nil
}

// resolutionUpdates builds the column set for a terminal transition: the
// payment id is stored only on SUCCESS, the failure reason only on FAILED.
func resolutionUpdates(status, paymentID, failReason string) map[string]interface{} {
	updates := map[string]interface{}{
		"status":      status,
		"resolved_at": time.Now(),
	}
	if status == models.TransactionStatusSuccess {
		updates["payment_id"] = paymentID
	} else {
		updates["fail_reason"] = failReason
	}
	return updates
}

func (g *GormLedger) ByID(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTxnNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (g *GormLedger) ByOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := g.db.WithContext(ctx).Where("order_id = ?", orderID).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTxnNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (g *GormLedger) ByUser(ctx context.Context, userID string) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := g.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (g *GormLedger) Balance(ctx context.Context, userID string) (models.AccountBalance, error) {
	bal := models.AccountBalance{UserID: userID, Currency: "INR"}

	row := struct {
		Total       int64
		LastUpdated *time.Time
	}{}
	err := g.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) AS total, MAX(resolved_at) AS last_updated").
		Where("user_id = ? AND status = ?", userID, models.TransactionStatusSuccess).
		Scan(&row).Error
	if err != nil {
		return bal, err
	}
	bal.Balance = models.RupeeAmount(row.Total)
	if row.LastUpdated != nil {
		bal.LastUpdated = *row.LastUpdated
	}
	return bal, nil
}
