package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
	"farmfresh/internal/dto"
	apperrors "farmfresh/internal/errors"
)

// Mock implementations

type mockOrderWriter struct {
	InsertFunc func(ctx context.Context, order *domain.Order) error
	inserted   []*domain.Order
}

func (m *mockOrderWriter) Insert(ctx context.Context, order *domain.Order) error {
	m.inserted = append(m.inserted, order)
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, order)
	}
	return nil
}

type mockProductReader struct {
	FindByIDsFunc func(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

func (m *mockProductReader) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	return m.FindByIDsFunc(ctx, ids)
}

type mockCartReader struct {
	FindFunc  func(ctx context.Context, customerID string) (*domain.Cart, error)
	ClearFunc func(ctx context.Context, customerID string) error
	cleared   []string
}

func (m *mockCartReader) Find(ctx context.Context, customerID string) (*domain.Cart, error) {
	return m.FindFunc(ctx, customerID)
}

func (m *mockCartReader) Clear(ctx context.Context, customerID string) error {
	m.cleared = append(m.cleared, customerID)
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx, customerID)
	}
	return nil
}

type recordingEmitter struct {
	events []domain.OrderStatusEvent
}

func (r *recordingEmitter) OrderStatusChanged(_ context.Context, event domain.OrderStatusEvent) {
	r.events = append(r.events, event)
}

func catalogWith(products ...domain.Product) *mockProductReader {
	return &mockProductReader{
		FindByIDsFunc: func(ctx context.Context, ids []string) (map[string]domain.Product, error) {
			out := map[string]domain.Product{}
			for _, p := range products {
				out[p.ID] = p
			}
			return out, nil
		},
	}
}

func newTestCheckout(orders *mockOrderWriter, products *mockProductReader, carts *mockCartReader, emitter *recordingEmitter) *CheckoutService {
	svc := NewCheckoutService(orders, products, carts, emitter, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

// Tests

func TestPlace_BuyNow_SnapshotsAndTotals(t *testing.T) {
	orders := &mockOrderWriter{}
	emitter := &recordingEmitter{}
	products := catalogWith(domain.Product{ID: "p-1", FarmerID: "f-1", Name: "Tomatoes", Price: 100})

	svc := newTestCheckout(orders, products, nil, emitter)

	order, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID:  "c-1",
		Items:       []dto.OrderItemInput{{ProductID: "p-1", Quantity: 2}},
		ContactName: "John Doe",
		Address:     "12 Farm Lane",
	})

	assert.NoError(t, err)
	assert.Equal(t, 200.0, order.Subtotal)
	assert.Equal(t, 20.0, order.Shipping)
	assert.Equal(t, 16.0, order.Tax)
	assert.Equal(t, 236.0, order.Total)
	assert.Equal(t, domain.StatusPlaced, order.Status)
	assert.Len(t, order.StatusHistory, 1)
	assert.Equal(t, domain.StatusPlaced, order.StatusHistory[0].Status)
	assert.Equal(t, []string{"f-1"}, order.FarmerIDs)
	assert.Equal(t, domain.PaymentCashOnDelivery, order.PaymentMethod)

	// Item snapshot carries catalog price and name.
	assert.Equal(t, "Tomatoes", order.Items[0].Name)
	assert.Equal(t, 100.0, order.Items[0].UnitPrice)

	assert.Len(t, orders.inserted, 1)
	assert.Len(t, emitter.events, 1)
	assert.Equal(t, domain.StatusPlaced, emitter.events[0].NewStatus)
	assert.Equal(t, "c-1", emitter.events[0].CustomerID)
}

func TestPlace_FromCart_ClearsCart(t *testing.T) {
	orders := &mockOrderWriter{}
	emitter := &recordingEmitter{}
	products := catalogWith(
		domain.Product{ID: "p-1", FarmerID: "f-1", Name: "Tomatoes", Price: 50},
		domain.Product{ID: "p-2", FarmerID: "f-2", Name: "Honey", Price: 30},
	)
	carts := &mockCartReader{
		FindFunc: func(ctx context.Context, customerID string) (*domain.Cart, error) {
			return &domain.Cart{
				CustomerID: customerID,
				Items: []domain.CartItem{
					{ProductID: "p-1", Quantity: 2},
					{ProductID: "p-2", Quantity: 1},
				},
			}, nil
		},
	}

	svc := newTestCheckout(orders, products, carts, emitter)

	order, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID: "c-1",
		FromCart:   true,
	})

	assert.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 130.0, order.Subtotal)
	assert.ElementsMatch(t, []string{"f-1", "f-2"}, order.FarmerIDs)
	assert.Equal(t, []string{"c-1"}, carts.cleared)
}

func TestPlace_BuyNow_DoesNotTouchCart(t *testing.T) {
	orders := &mockOrderWriter{}
	carts := &mockCartReader{
		FindFunc: func(ctx context.Context, customerID string) (*domain.Cart, error) {
			t.Fatal("cart should not be read for buy-now orders")
			return nil, nil
		},
	}
	products := catalogWith(domain.Product{ID: "p-1", Name: "Eggs", Price: 10})

	svc := newTestCheckout(orders, products, carts, &recordingEmitter{})

	_, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID: "c-1",
		Items:      []dto.OrderItemInput{{ProductID: "p-1", Quantity: 1}},
	})

	assert.NoError(t, err)
	assert.Empty(t, carts.cleared)
}

func TestPlace_EmptyOrder(t *testing.T) {
	svc := newTestCheckout(&mockOrderWriter{}, catalogWith(), nil, &recordingEmitter{})

	_, err := svc.Place(context.Background(), dto.NewOrderRequest{CustomerID: "c-1"})

	_, ok := apperrors.IsEmptyOrderError(err)
	assert.True(t, ok)
}

func TestPlace_EmptyCart(t *testing.T) {
	carts := &mockCartReader{
		FindFunc: func(ctx context.Context, customerID string) (*domain.Cart, error) {
			return &domain.Cart{CustomerID: customerID, Items: []domain.CartItem{}}, nil
		},
	}
	svc := newTestCheckout(&mockOrderWriter{}, catalogWith(), carts, &recordingEmitter{})

	_, err := svc.Place(context.Background(), dto.NewOrderRequest{CustomerID: "c-1", FromCart: true})

	_, ok := apperrors.IsEmptyOrderError(err)
	assert.True(t, ok)
	assert.Empty(t, carts.cleared)
}

func TestPlace_ZeroQuantityRejected(t *testing.T) {
	svc := newTestCheckout(&mockOrderWriter{}, catalogWith(), nil, &recordingEmitter{})

	_, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID: "c-1",
		Items:      []dto.OrderItemInput{{ProductID: "p-1", Quantity: 0}},
	})

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestPlace_UnknownProduct(t *testing.T) {
	svc := newTestCheckout(&mockOrderWriter{}, catalogWith(), nil, &recordingEmitter{})

	_, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID: "c-1",
		Items:      []dto.OrderItemInput{{ProductID: "missing", Quantity: 1}},
	})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestPlace_InsertFailurePropagates(t *testing.T) {
	storeErr := errors.New("write failed")
	orders := &mockOrderWriter{
		InsertFunc: func(ctx context.Context, order *domain.Order) error { return storeErr },
	}
	emitter := &recordingEmitter{}
	products := catalogWith(domain.Product{ID: "p-1", Name: "Eggs", Price: 10})

	svc := newTestCheckout(orders, products, nil, emitter)

	_, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID: "c-1",
		Items:      []dto.OrderItemInput{{ProductID: "p-1", Quantity: 1}},
	})

	assert.ErrorIs(t, err, storeErr)
	assert.Empty(t, emitter.events)
}

func TestPlace_FailedCartClearDoesNotFailOrder(t *testing.T) {
	orders := &mockOrderWriter{}
	products := catalogWith(domain.Product{ID: "p-1", Name: "Eggs", Price: 10})
	carts := &mockCartReader{
		FindFunc: func(ctx context.Context, customerID string) (*domain.Cart, error) {
			return &domain.Cart{CustomerID: customerID, Items: []domain.CartItem{{ProductID: "p-1", Quantity: 1}}}, nil
		},
		ClearFunc: func(ctx context.Context, customerID string) error {
			return errors.New("clear failed")
		},
	}

	svc := newTestCheckout(orders, products, carts, &recordingEmitter{})

	order, err := svc.Place(context.Background(), dto.NewOrderRequest{CustomerID: "c-1", FromCart: true})

	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestPlace_InertPaymentMethodStored(t *testing.T) {
	orders := &mockOrderWriter{}
	products := catalogWith(domain.Product{ID: "p-1", Name: "Eggs", Price: 10})

	svc := newTestCheckout(orders, products, nil, &recordingEmitter{})

	order, err := svc.Place(context.Background(), dto.NewOrderRequest{
		CustomerID:    "c-1",
		Items:         []dto.OrderItemInput{{ProductID: "p-1", Quantity: 1}},
		PaymentMethod: "razorpay",
	})

	assert.NoError(t, err)
	assert.Equal(t, "razorpay", order.PaymentMethod)
}
