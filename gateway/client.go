// Package gateway wraps the Razorpay surface this service depends on: order
// creation, the hosted checkout hand-off, and payment signature verification.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/models"

	razorpay "github.com/razorpay/razorpay-go"
)

// OrderCreator creates an order record with the payment gateway. The razorpay
// client satisfies it in production; tests substitute a fake.
type OrderCreator interface {
	CreateOrder(ctx context.Context, amount models.PaiseAmount, currency, receipt, userID string) (*models.PaymentOrder, error)
}

// Receipt builds the idempotency/reference string attached to an order. The
// epoch-millis suffix makes each attempt unique and traceable back to a user.
func Receipt(userID string) string {
	return fmt.Sprintf("topup_%s_%d", userID, time.Now().UnixMilli())
}

// RazorpayClient is the production OrderCreator.
type RazorpayClient struct {
	client *razorpay.Client
	keyID  string
}

func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

// KeyID returns the public key id the checkout surface is opened with.
func (r *RazorpayClient) KeyID() string {
	return r.keyID
}

// CreateOrder calls the gateway's order-creation API. Failures are returned
// as-is with the gateway's error detail; order creation is user-initiated and
// never retried automatically.
func (r *RazorpayClient) CreateOrder(ctx context.Context, amount models.PaiseAmount, currency, receipt, userID string) (*models.PaymentOrder, error) {
	orderData := map[string]interface{}{
		"amount":          int64(amount),
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": true,
		"notes": map[string]interface{}{
			"userId":   userID,
			"purpose":  "Account Top-up",
			"platform": "TradeFlow",
		},
	}

	resp, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	order := &models.PaymentOrder{
		ID:        asString(resp["id"]),
		Amount:    models.PaiseAmount(asInt64(resp["amount"])),
		Currency:  asString(resp["currency"]),
		Receipt:   asString(resp["receipt"]),
		Status:    asString(resp["status"]),
		CreatedAt: asInt64(resp["created_at"]),
	}
	if order.ID == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}
	return order, nil
}

// The razorpay client returns loosely typed maps; numbers arrive as float64
// and ids as strings.

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}
