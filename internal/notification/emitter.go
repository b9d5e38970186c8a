package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
)

// Emitter receives one event per applied order transition. Implementations
// are fire-and-forget: they log failures and never return them, so a broken
// notification path cannot block or fail a transition.
type Emitter interface {
	OrderStatusChanged(ctx context.Context, event domain.OrderStatusEvent)
}

type Repository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	FindByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
}

// StoreEmitter persists one notification document per recipient for the
// in-app feed. Cancellations also notify the farmers of the ordered
// products.
type StoreEmitter struct {
	repo   Repository
	logger *zap.Logger
}

func NewStoreEmitter(repo Repository, logger *zap.Logger) *StoreEmitter {
	return &StoreEmitter{repo: repo, logger: logger}
}

func (e *StoreEmitter) OrderStatusChanged(ctx context.Context, event domain.OrderStatusEvent) {
	recipients := []string{event.CustomerID}
	if event.NewStatus == domain.StatusCancelled {
		recipients = append(recipients, event.FarmerIDs...)
	}

	for _, recipientID := range recipients {
		n := &domain.Notification{
			ID:          uuid.New().String(),
			RecipientID: recipientID,
			OrderID:     event.OrderID,
			Status:      event.NewStatus,
			Message:     messageFor(event.NewStatus, event.OrderID),
			CreatedAt:   event.Timestamp,
		}
		if err := e.repo.Insert(ctx, n); err != nil {
			e.logger.Warn("persisting notification",
				zap.String("orderId", event.OrderID),
				zap.String("recipientId", recipientID),
				zap.Error(err))
		}
	}
}

func messageFor(status domain.Status, orderID string) string {
	switch status {
	case domain.StatusPlaced:
		return fmt.Sprintf("Your order %s has been placed", orderID)
	case domain.StatusConfirmed:
		return fmt.Sprintf("Your order %s has been confirmed", orderID)
	case domain.StatusShipped:
		return fmt.Sprintf("Your order %s is on its way", orderID)
	case domain.StatusDelivered:
		return fmt.Sprintf("Your order %s has been delivered", orderID)
	case domain.StatusCancelled:
		return fmt.Sprintf("Order %s has been cancelled", orderID)
	default:
		return fmt.Sprintf("Order %s is now %s", orderID, status)
	}
}

// Publisher is the transport side of the kafka emitter.
type Publisher interface {
	Publish(key, value []byte)
}

// KafkaEmitter publishes events keyed by order id so all events for one
// order keep their partition order.
type KafkaEmitter struct {
	producer Publisher
	logger   *zap.Logger
}

func NewKafkaEmitter(producer Publisher, logger *zap.Logger) *KafkaEmitter {
	return &KafkaEmitter{producer: producer, logger: logger}
}

func (e *KafkaEmitter) OrderStatusChanged(_ context.Context, event domain.OrderStatusEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		e.logger.Warn("encoding notification event", zap.String("orderId", event.OrderID), zap.Error(err))
		return
	}
	e.producer.Publish([]byte(event.OrderID), value)
}

// Fanout delivers each event to every configured emitter.
type Fanout []Emitter

func (f Fanout) OrderStatusChanged(ctx context.Context, event domain.OrderStatusEvent) {
	for _, e := range f {
		e.OrderStatusChanged(ctx, event)
	}
}
