package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/gateway"
	"github.com/Ayushyadav168/TradeFlow-Main/models"
	"github.com/Ayushyadav168/TradeFlow-Main/store"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/google/uuid"
)

// TopUpService runs the top-up lifecycle: validate, create the gateway order,
// record the attempt, hand off to checkout, verify the payment signature and
// resolve the ledger. Within one attempt those steps are strictly ordered.
type TopUpService struct {
	orders   gateway.OrderCreator
	verifier *gateway.SignatureVerifier
	ledger   store.TransactionLedger
	events   *EventPublisher
	keyID    string

	// surface is optional: the hosted deployment leaves it nil and the
	// browser widget resolves through the verify endpoint instead.
	surface gateway.CheckoutSurface

	// receiptEmails resolves a user's email address for receipt delivery.
	// The verify payload carries no contact details, so hosted deployments
	// wire their user directory here; nil disables delivery on that path.
	receiptEmails func(userID string) string
	sendReceipt   func(to string, txn models.Transaction) error
}

func NewTopUpService(orders gateway.OrderCreator, verifier *gateway.SignatureVerifier, ledger store.TransactionLedger, events *EventPublisher, keyID string) *TopUpService {
	return &TopUpService{
		orders:      orders,
		verifier:    verifier,
		ledger:      ledger,
		events:      events,
		keyID:       keyID,
		sendReceipt: SendTopUpReceiptEmail,
	}
}

// WithCheckout attaches a checkout surface for embedded, end-to-end flows.
func (s *TopUpService) WithCheckout(surface gateway.CheckoutSurface) *TopUpService {
	s.surface = surface
	return s
}

// WithReceiptEmails attaches a user directory lookup so receipts also go out
// when payments settle through the verify endpoint.
func (s *TopUpService) WithReceiptEmails(lookup func(userID string) string) *TopUpService {
	s.receiptEmails = lookup
	return s
}

// deliverReceipt mails the receipt off the request path. Best-effort only.
func (s *TopUpService) deliverReceipt(to string, txn models.Transaction) {
	if to == "" {
		return
	}
	go func() {
		if err := s.sendReceipt(to, txn); err != nil {
			utils.LogError("Receipt email for order %s: %v", txn.OrderID, err)
		}
	}()
}

// Ledger exposes the transaction store for read-side handlers.
func (s *TopUpService) Ledger() store.TransactionLedger {
	return s.ledger
}

// CreateGatewayOrder creates a gateway order for an amount already expressed
// in paise and records the PENDING transaction for it. Gateway failures are
// surfaced with the gateway's own detail attached and are never retried here.
func (s *TopUpService) CreateGatewayOrder(ctx context.Context, amount models.PaiseAmount, currency, receipt, userID, method string) (*models.PaymentOrder, error) {
	if appErr := utils.ValidateOrderAmount(amount); appErr != nil {
		return nil, appErr
	}

	order, err := s.orders.CreateOrder(ctx, amount, currency, receipt, userID)
	if err != nil {
		return nil, utils.GatewayFailed("Failed to create payment order", err)
	}
	utils.LogInfo("Created payment order %s for user %s (%d paise)", order.ID, userID, int64(order.Amount))

	txn := models.Transaction{
		ID:        "txn_" + uuid.New().String(),
		OrderID:   order.ID,
		Amount:    amount.ToRupees(),
		Currency:  order.Currency,
		Status:    models.TransactionStatusPending,
		Method:    method,
		Timestamp: time.Now(),
		UserID:    userID,
		Receipt:   order.Receipt,
	}
	if err := s.ledger.Record(ctx, txn); err != nil {
		// The gateway order exists either way; losing the local record
		// is a ledger problem, not a payment one.
		utils.LogError("Failed to record transaction for order %s: %v", order.ID, err)
		return nil, utils.WrapError(err, "failed to record transaction")
	}
	s.events.PaymentInitiated(txn)

	return order, nil
}

// CreateOrder validates a rupee-denominated top-up request and creates the
// gateway order for it, synthesizing the receipt reference.
func (s *TopUpService) CreateOrder(ctx context.Context, req models.TopUpRequest) (*models.PaymentOrder, error) {
	if appErr := utils.ValidateTopUpRequest(req); appErr != nil {
		return nil, appErr
	}
	receipt := gateway.Receipt(req.UserID)
	return s.CreateGatewayOrder(ctx, req.Amount.ToPaise(), req.Currency, receipt, req.UserID, req.Method)
}

// VerifyPayment is the sole authority for marking a transaction SUCCESS. A
// signature mismatch resolves the attempt to FAILED even if the checkout UI
// claimed success. Verification itself is pure; re-verifying a valid triple
// succeeds again and the ledger transition stays idempotent.
func (s *TopUpService) VerifyPayment(ctx context.Context, orderID, paymentID, signature string) error {
	if err := s.verifier.Verify(orderID, paymentID, signature); err != nil {
		if utils.HasReason(err, utils.ReasonSignatureMismatch) {
			utils.LogError("Signature mismatch for order %s", orderID)
			s.failTransaction(ctx, orderID, utils.ReasonSignatureMismatch)
		}
		return err
	}

	err := s.ledger.MarkResolved(ctx, orderID, models.TransactionStatusSuccess, paymentID, "")
	switch {
	case err == nil:
		utils.LogInfo("Payment verified for order %s, payment %s", orderID, paymentID)
		if txn, lerr := s.ledger.ByOrderID(ctx, orderID); lerr == nil {
			s.events.PaymentVerified(txn.UserID, orderID, paymentID)
			if s.receiptEmails != nil {
				s.deliverReceipt(s.receiptEmails(txn.UserID), *txn)
			}
		}
	case errors.Is(err, store.ErrTxnResolved):
		// Re-verification of an already settled attempt.
		utils.LogDebug("Order %s already resolved, verification remains valid", orderID)
	case errors.Is(err, store.ErrTxnNotFound):
		// The signature proves the payment regardless of whether this
		// process recorded the attempt (e.g. after a restart of the
		// in-memory ledger).
		utils.LogInfo("Verified payment for unknown order %s", orderID)
	default:
		return utils.WrapError(err, "failed to resolve transaction")
	}
	return nil
}

func (s *TopUpService) failTransaction(ctx context.Context, orderID, reason string) {
	err := s.ledger.MarkResolved(ctx, orderID, models.TransactionStatusFailed, "", reason)
	if err != nil && !errors.Is(err, store.ErrTxnResolved) && !errors.Is(err, store.ErrTxnNotFound) {
		utils.LogError("Failed to mark order %s failed: %v", orderID, err)
		return
	}
	if txn, lerr := s.ledger.ByOrderID(ctx, orderID); lerr == nil {
		s.events.PaymentFailed(txn.UserID, orderID, reason)
	}
}

// TopUp drives one complete attempt through the attached checkout surface.
// It resolves to the final transaction whatever the outcome; the error
// carries the reason when the attempt did not succeed.
func (s *TopUpService) TopUp(ctx context.Context, req models.TopUpRequest, customer gateway.Customer) (*models.Transaction, error) {
	if s.surface == nil {
		return nil, fmt.Errorf("no checkout surface configured")
	}

	order, err := s.CreateOrder(ctx, req)
	if err != nil {
		return nil, err
	}

	co := gateway.NewCoordinator(s.surface, s.keyID)
	res := co.Run(ctx, order, customer)

	switch res.Outcome {
	case gateway.CheckoutCancelled:
		s.failTransaction(ctx, order.ID, utils.ReasonPaymentCancelled)
		txn, _ := s.ledger.ByOrderID(ctx, order.ID)
		return txn, utils.NewAppError(400, utils.ReasonPaymentCancelled, "Payment cancelled by user", nil)

	case gateway.CheckoutFailed:
		// Keep the surface's own description alongside the reason code so
		// the ledger entry says what actually went wrong.
		reason := utils.ReasonPaymentFailed
		if res.FailureReason != "" {
			reason = fmt.Sprintf("%s: %s", utils.ReasonPaymentFailed, res.FailureReason)
		}
		s.failTransaction(ctx, order.ID, reason)
		txn, _ := s.ledger.ByOrderID(ctx, order.ID)
		return txn, utils.NewAppError(400, utils.ReasonPaymentFailed,
			fmt.Sprintf("Payment failed: %s", res.FailureReason), nil)

	default: // CheckoutSuccess
		if err := s.VerifyPayment(ctx, order.ID, res.PaymentID, res.Signature); err != nil {
			txn, _ := s.ledger.ByOrderID(ctx, order.ID)
			return txn, err
		}
		txn, lerr := s.ledger.ByOrderID(ctx, order.ID)
		if lerr != nil {
			return nil, utils.WrapError(lerr, "verified payment missing from ledger")
		}
		// With a directory lookup attached VerifyPayment already delivered
		// the receipt; otherwise use the contact the caller supplied.
		if s.receiptEmails == nil {
			s.deliverReceipt(customer.Email, *txn)
		}
		return txn, nil
	}
}

// Transactions returns a user's top-up attempts, newest first.
func (s *TopUpService) Transactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.ledger.ByUser(ctx, userID)
}

// Balance returns the account balance derived from verified top-ups.
func (s *TopUpService) Balance(ctx context.Context, userID string) (models.AccountBalance, error) {
	return s.ledger.Balance(ctx, userID)
}
