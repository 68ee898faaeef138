package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
)

// Checkout session defaults, passed through to the checkout surface. Retries
// happen inside the surface itself; the coordinator never re-opens it.
const (
	DefaultCheckoutTimeout = 300 * time.Second
	DefaultMaxRetries      = 3
)

// CheckoutOutcome is the normalized resolution of one checkout session.
type CheckoutOutcome string

const (
	CheckoutSuccess   CheckoutOutcome = "success"
	CheckoutCancelled CheckoutOutcome = "cancelled"
	CheckoutFailed    CheckoutOutcome = "failed"
)

// Customer holds display details used only to prefill the checkout surface.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// CheckoutOptions configures the checkout surface for one order.
type CheckoutOptions struct {
	Key           string
	Amount        models.PaiseAmount
	Currency      string
	OrderID       string
	Prefill       Customer
	RetryEnabled  bool
	MaxRetryCount int
	Timeout       time.Duration
}

// CheckoutResult is the tagged resolution of a session. PaymentID and
// Signature are set only on success; FailureReason only on failure.
type CheckoutResult struct {
	Outcome       CheckoutOutcome
	OrderID       string
	PaymentID     string
	Signature     string
	FailureReason string
}

// CheckoutSurface is the external, black-box checkout UI. Present blocks
// until the user drives the session to completion, dismisses it, or ctx
// expires. In production the hosted widget plays this role from the browser
// and resolves through the verify endpoint instead; embedded clients and
// tests provide an implementation.
type CheckoutSurface interface {
	Present(ctx context.Context, opts CheckoutOptions) (CheckoutResult, error)
}

// Coordinator bridges a server-created order to the checkout surface and
// resolves to exactly one terminal outcome. It performs no polling: it
// suspends on Present until the surface yields.
type Coordinator struct {
	surface CheckoutSurface
	keyID   string
}

func NewCoordinator(surface CheckoutSurface, keyID string) *Coordinator {
	return &Coordinator{surface: surface, keyID: keyID}
}

// Run opens the checkout surface for the order and normalizes its resolution.
// A session idle past the timeout counts as abandoned and surfaces as
// cancellation. Dismissal leaves the gateway order unredeemed; no cancel call
// is issued to the gateway (see DESIGN.md).
func (co *Coordinator) Run(ctx context.Context, order *models.PaymentOrder, customer Customer) CheckoutResult {
	opts := CheckoutOptions{
		Key:           co.keyID,
		Amount:        order.Amount,
		Currency:      order.Currency,
		OrderID:       order.ID,
		Prefill:       customer,
		RetryEnabled:  true,
		MaxRetryCount: DefaultMaxRetries,
		Timeout:       DefaultCheckoutTimeout,
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	res, err := co.surface.Present(ctx, opts)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return CheckoutResult{Outcome: CheckoutCancelled, OrderID: order.ID}
		}
		return CheckoutResult{Outcome: CheckoutFailed, OrderID: order.ID, FailureReason: err.Error()}
	}

	res.OrderID = order.ID
	switch res.Outcome {
	case CheckoutSuccess:
		// A success without payment credentials cannot be verified and
		// must not be trusted.
		if res.PaymentID == "" || res.Signature == "" {
			return CheckoutResult{
				Outcome:       CheckoutFailed,
				OrderID:       order.ID,
				FailureReason: "checkout reported success without payment details",
			}
		}
		return res
	case CheckoutCancelled, CheckoutFailed:
		return res
	default:
		return CheckoutResult{
			Outcome:       CheckoutFailed,
			OrderID:       order.ID,
			FailureReason: "checkout returned an unknown outcome",
		}
	}
}
