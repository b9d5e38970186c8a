package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
	"farmfresh/internal/dto"
	apperrors "farmfresh/internal/errors"
	"farmfresh/internal/notification"
)

type OrderWriter interface {
	Insert(ctx context.Context, order *domain.Order) error
}

type ProductReader interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type CartReader interface {
	Find(ctx context.Context, customerID string) (*domain.Cart, error)
	Clear(ctx context.Context, customerID string) error
}

// CheckoutService turns cart contents or explicit items into a placed order.
// Prices and names are snapshotted from the catalog at placement; later
// catalog changes never alter a placed order.
type CheckoutService struct {
	orders   OrderWriter
	products ProductReader
	carts    CartReader
	emitter  notification.Emitter
	logger   *zap.Logger
	now      func() time.Time
}

func NewCheckoutService(
	orders OrderWriter,
	products ProductReader,
	carts CartReader,
	emitter notification.Emitter,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		orders:   orders,
		products: products,
		carts:    carts,
		emitter:  emitter,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *CheckoutService) Place(ctx context.Context, req dto.NewOrderRequest) (*domain.Order, error) {
	items := req.Items
	if req.FromCart {
		cart, err := s.carts.Find(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}
		items = make([]dto.OrderItemInput, 0, len(cart.Items))
		for _, it := range cart.Items {
			items = append(items, dto.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
		}
	}

	order, err := s.create(ctx, req, items)
	if err != nil {
		return nil, err
	}

	if req.FromCart {
		// The order is already persisted; a failed cart clear leaves stale
		// cart entries, not a broken order.
		if err := s.carts.Clear(ctx, req.CustomerID); err != nil {
			s.logger.Warn("clearing cart after checkout",
				zap.String("orderId", order.ID),
				zap.String("customerId", req.CustomerID),
				zap.Error(err))
		}
	}

	s.emitter.OrderStatusChanged(ctx, domain.OrderStatusEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		FarmerIDs:  order.FarmerIDs,
		NewStatus:  domain.StatusPlaced,
		Timestamp:  order.CreatedAt,
	})

	s.logger.Info("order placed",
		zap.String("orderId", order.ID),
		zap.String("customerId", order.CustomerID),
		zap.Int("itemCount", len(order.Items)),
		zap.Float64("total", order.Total))

	return order, nil
}

func (s *CheckoutService) create(ctx context.Context, req dto.NewOrderRequest, items []dto.OrderItemInput) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.NewEmptyOrderError("order has no items")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
				Field:   "items",
				Message: fmt.Sprintf("quantity for product %s must be at least 1", it.ProductID),
			})
		}
	}

	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &domain.Order{
		ID:              uuid.New().String(),
		CustomerID:      req.CustomerID,
		Items:           make([]domain.OrderItem, 0, len(items)),
		ShippingAddress: req.Address,
		ContactName:     req.ContactName,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
		PaymentMethod:   paymentMethodOrDefault(req.PaymentMethod),
		CreatedAt:       now,
	}

	subtotal := 0.0
	seenFarmers := map[string]bool{}
	for _, it := range items {
		product, ok := products[it.ProductID]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", it.ProductID))
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  it.Quantity,
			UnitPrice: product.Price,
		})
		if product.FarmerID != "" && !seenFarmers[product.FarmerID] {
			seenFarmers[product.FarmerID] = true
			order.FarmerIDs = append(order.FarmerIDs, product.FarmerID)
		}
		subtotal += product.Price * float64(it.Quantity)
	}

	order.Subtotal = domain.Round2(subtotal)
	order.Shipping, order.Tax, order.Total = domain.ComputeCharges(order.Subtotal)
	order.Transition(domain.StatusPlaced, now)

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func paymentMethodOrDefault(method string) string {
	if method == "" {
		return domain.PaymentCashOnDelivery
	}
	// Other methods are recorded as chosen but carry no behavior.
	return method
}
