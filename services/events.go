package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Ayushyadav168/TradeFlow-Main/models"
	"github.com/Ayushyadav168/TradeFlow-Main/utils"

	"github.com/segmentio/kafka-go"
)

const paymentsTopic = "payments"

// EventPublisher emits payment lifecycle events to Kafka. Publishing is
// best-effort: a nil publisher or a broker failure never affects the payment
// flow itself.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher builds a publisher from a comma-separated broker list.
// An empty list disables events and returns nil; all methods are nil-safe.
func NewEventPublisher(brokers string) *EventPublisher {
	var addrs []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	if len(addrs) == 0 {
		return nil
	}

	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(addrs...),
			Topic:        paymentsTopic,
			Balancer:     &kafka.LeastBytes{},
			WriteTimeout: 10 * time.Second,
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *EventPublisher) publish(key string, evt map[string]interface{}) {
	if p == nil || p.writer == nil {
		return
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		utils.LogError("Failed to marshal payment event: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, kafka.Message{
			Key:   []byte(key),
			Value: payload,
		}); err != nil {
			utils.LogError("Failed to publish payment event %v: %v", evt["event"], err)
		}
	}()
}

// PaymentInitiated emits an event when a PENDING transaction is recorded.
func (p *EventPublisher) PaymentInitiated(txn models.Transaction) {
	p.publish("user-"+txn.UserID, map[string]interface{}{
		"event":    "payment.initiated",
		"user_id":  txn.UserID,
		"order_id": txn.OrderID,
		"amount":   int64(txn.Amount),
		"currency": txn.Currency,
		"method":   txn.Method,
		"status":   txn.Status,
		"ts":       time.Now().UTC().Format(time.RFC3339),
	})
}

// PaymentVerified emits an event when a payment's signature checks out.
func (p *EventPublisher) PaymentVerified(userID, orderID, paymentID string) {
	p.publish("user-"+userID, map[string]interface{}{
		"event":      "payment.verified",
		"user_id":    userID,
		"order_id":   orderID,
		"payment_id": paymentID,
		"status":     models.TransactionStatusSuccess,
		"ts":         time.Now().UTC().Format(time.RFC3339),
	})
}

// PaymentFailed emits an event when an attempt resolves to FAILED.
func (p *EventPublisher) PaymentFailed(userID, orderID, reason string) {
	p.publish("user-"+userID, map[string]interface{}{
		"event":    "payment.failed",
		"user_id":  userID,
		"order_id": orderID,
		"reason":   reason,
		"status":   models.TransactionStatusFailed,
		"ts":       time.Now().UTC().Format(time.RFC3339),
	})
}

// Close flushes and closes the underlying writer.
func (p *EventPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
