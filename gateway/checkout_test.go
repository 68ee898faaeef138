package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/models"

	"github.com/stretchr/testify/assert"
)

func testOrder() *models.PaymentOrder {
	return &models.PaymentOrder{
		ID:       "order_abc",
		Amount:   500000,
		Currency: "INR",
		Receipt:  "topup_u1_1700000000000",
		Status:   "created",
	}
}

type scriptedSurface struct {
	result CheckoutResult
	err    error
	opts   CheckoutOptions // captured
}

func (s *scriptedSurface) Present(ctx context.Context, opts CheckoutOptions) (CheckoutResult, error) {
	s.opts = opts
	return s.result, s.err
}

// hangingSurface blocks until the session context expires, like a checkout
// window the user walked away from.
type hangingSurface struct{}

func (hangingSurface) Present(ctx context.Context, opts CheckoutOptions) (CheckoutResult, error) {
	<-ctx.Done()
	return CheckoutResult{}, ctx.Err()
}

func TestCoordinatorPassesOrderConfiguration(t *testing.T) {
	surface := &scriptedSurface{result: CheckoutResult{
		Outcome:   CheckoutSuccess,
		PaymentID: "pay_123",
		Signature: "sig",
	}}
	co := NewCoordinator(surface, "rzp_test_key")
	customer := Customer{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}

	res := co.Run(context.Background(), testOrder(), customer)

	assert.Equal(t, CheckoutSuccess, res.Outcome)
	assert.Equal(t, "order_abc", res.OrderID)
	assert.Equal(t, "rzp_test_key", surface.opts.Key)
	assert.Equal(t, models.PaiseAmount(500000), surface.opts.Amount)
	assert.Equal(t, "order_abc", surface.opts.OrderID)
	assert.Equal(t, customer, surface.opts.Prefill)
	assert.True(t, surface.opts.RetryEnabled)
	assert.Equal(t, DefaultMaxRetries, surface.opts.MaxRetryCount)
	assert.Equal(t, DefaultCheckoutTimeout, surface.opts.Timeout)
}

func TestCoordinatorNormalizesDismissal(t *testing.T) {
	surface := &scriptedSurface{result: CheckoutResult{Outcome: CheckoutCancelled}}
	co := NewCoordinator(surface, "rzp_test_key")

	res := co.Run(context.Background(), testOrder(), Customer{})
	assert.Equal(t, CheckoutCancelled, res.Outcome)
	assert.Empty(t, res.PaymentID)
}

func TestCoordinatorNormalizesFailure(t *testing.T) {
	surface := &scriptedSurface{result: CheckoutResult{
		Outcome:       CheckoutFailed,
		FailureReason: "card declined",
	}}
	co := NewCoordinator(surface, "rzp_test_key")

	res := co.Run(context.Background(), testOrder(), Customer{})
	assert.Equal(t, CheckoutFailed, res.Outcome)
	assert.Equal(t, "card declined", res.FailureReason)
}

func TestCoordinatorTreatsSurfaceErrorAsFailure(t *testing.T) {
	surface := &scriptedSurface{err: errors.New("widget crashed")}
	co := NewCoordinator(surface, "rzp_test_key")

	res := co.Run(context.Background(), testOrder(), Customer{})
	assert.Equal(t, CheckoutFailed, res.Outcome)
	assert.Equal(t, "widget crashed", res.FailureReason)
}

func TestCoordinatorTreatsAbandonmentAsCancellation(t *testing.T) {
	co := NewCoordinator(hangingSurface{}, "rzp_test_key")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := co.Run(ctx, testOrder(), Customer{})
	assert.Equal(t, CheckoutCancelled, res.Outcome)
}

func TestCoordinatorRejectsSuccessWithoutPaymentDetails(t *testing.T) {
	surface := &scriptedSurface{result: CheckoutResult{Outcome: CheckoutSuccess}}
	co := NewCoordinator(surface, "rzp_test_key")

	res := co.Run(context.Background(), testOrder(), Customer{})
	assert.Equal(t, CheckoutFailed, res.Outcome)
	assert.NotEmpty(t, res.FailureReason)
}
