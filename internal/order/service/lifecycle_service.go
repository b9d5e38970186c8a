package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"farmfresh/internal/domain"
	apperrors "farmfresh/internal/errors"
	"farmfresh/internal/notification"
)

type OrderReader interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type StatusAdvancer interface {
	AdvanceStatus(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error
}

type OrderStore interface {
	OrderReader
	StatusAdvancer
}

// LifecycleService serves the request-driven side of the order lifecycle:
// reads plus the explicit cancel transition. Automatic progress belongs to
// the scheduler.
type LifecycleService struct {
	orders  OrderStore
	emitter notification.Emitter
	logger  *zap.Logger
	now     func() time.Time
}

func NewLifecycleService(
	orders OrderStore,
	emitter notification.Emitter,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		orders:  orders,
		emitter: emitter,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *LifecycleService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.FindByID(ctx, orderID)
}

func (s *LifecycleService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return s.orders.FindByCustomer(ctx, customerID)
}

// Cancel applies the cancel transition through the same compare-and-set the
// scheduler uses, so a tick and a cancel can never both win on one order.
func (s *LifecycleService) Cancel(ctx context.Context, orderID, requesterID string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// Requesters outside the order see the same answer as a missing order.
	if !s.mayCancel(order, requesterID) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order %s not found", orderID))
	}

	if _, err := domain.Next(order.Status, domain.EventCancel); err != nil {
		return nil, err
	}

	entry := domain.StatusEntry{Status: domain.StatusCancelled, At: s.now().UTC()}
	if err := s.orders.AdvanceStatus(ctx, order.ID, order.Status, entry); err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			return nil, apperrors.NewConflictError("order already progressed")
		}
		return nil, err
	}

	order.Transition(domain.StatusCancelled, entry.At)

	s.emitter.OrderStatusChanged(ctx, domain.OrderStatusEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		FarmerIDs:  order.FarmerIDs,
		NewStatus:  domain.StatusCancelled,
		Timestamp:  entry.At,
	})

	s.logger.Info("order cancelled",
		zap.String("orderId", order.ID),
		zap.String("requesterId", requesterID))

	return order, nil
}

func (s *LifecycleService) mayCancel(order *domain.Order, requesterID string) bool {
	if requesterID == order.CustomerID {
		return true
	}
	for _, farmerID := range order.FarmerIDs {
		if requesterID == farmerID {
			return true
		}
	}
	return false
}
