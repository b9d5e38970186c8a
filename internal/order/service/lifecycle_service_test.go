package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
	apperrors "farmfresh/internal/errors"
)

type mockOrderStore struct {
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Order, error)
	FindByCustomerFunc func(ctx context.Context, customerID string) ([]domain.Order, error)
	AdvanceStatusFunc  func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error
}

func (m *mockOrderStore) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockOrderStore) FindByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	return m.FindByCustomerFunc(ctx, customerID)
}

func (m *mockOrderStore) AdvanceStatus(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
	return m.AdvanceStatusFunc(ctx, id, expected, entry)
}

func placedOrder() *domain.Order {
	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Order{
		ID:            "o-1",
		CustomerID:    "c-1",
		FarmerIDs:     []string{"f-1"},
		Status:        domain.StatusPlaced,
		StatusHistory: []domain.StatusEntry{{Status: domain.StatusPlaced, At: created}},
		CreatedAt:     created,
	}
}

func TestCancel_Success(t *testing.T) {
	var gotExpected domain.Status
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return placedOrder(), nil
		},
		AdvanceStatusFunc: func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
			gotExpected = expected
			return nil
		},
	}
	emitter := &recordingEmitter{}

	svc := NewLifecycleService(store, emitter, zap.NewNop())
	order, err := svc.Cancel(context.Background(), "o-1", "c-1")

	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPlaced, gotExpected)
	assert.Equal(t, domain.StatusCancelled, order.Status)
	assert.Len(t, order.StatusHistory, 2)
	assert.Equal(t, domain.StatusCancelled, order.StatusHistory[1].Status)

	// Customer and farmers are both notified on cancel.
	assert.Len(t, emitter.events, 1)
	assert.Equal(t, domain.StatusCancelled, emitter.events[0].NewStatus)
	assert.Equal(t, "c-1", emitter.events[0].CustomerID)
	assert.Equal(t, []string{"f-1"}, emitter.events[0].FarmerIDs)
}

func TestCancel_ByFarmer(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return placedOrder(), nil
		},
		AdvanceStatusFunc: func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
			return nil
		},
	}

	svc := NewLifecycleService(store, &recordingEmitter{}, zap.NewNop())
	_, err := svc.Cancel(context.Background(), "o-1", "f-1")

	assert.NoError(t, err)
}

func TestCancel_StrangerSeesNotFound(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return placedOrder(), nil
		},
		AdvanceStatusFunc: func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
			t.Fatal("should not be called")
			return nil
		},
	}

	svc := NewLifecycleService(store, &recordingEmitter{}, zap.NewNop())
	_, err := svc.Cancel(context.Background(), "o-1", "someone-else")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCancel_DeliveredOrderRejected(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			order := placedOrder()
			order.Transition(domain.StatusConfirmed, order.CreatedAt.Add(time.Hour))
			order.Transition(domain.StatusShipped, order.CreatedAt.Add(2*time.Hour))
			order.Transition(domain.StatusDelivered, order.CreatedAt.Add(3*time.Hour))
			return order, nil
		},
		AdvanceStatusFunc: func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
			t.Fatal("should not be called")
			return nil
		},
	}
	emitter := &recordingEmitter{}

	svc := NewLifecycleService(store, emitter, zap.NewNop())
	_, err := svc.Cancel(context.Background(), "o-1", "c-1")

	itErr, ok := apperrors.IsInvalidTransitionError(err)
	assert.True(t, ok)
	assert.Equal(t, string(domain.StatusDelivered), itErr.From)
	assert.Empty(t, emitter.events)
}

func TestCancel_ConflictSurfacesAsAlreadyProgressed(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return placedOrder(), nil
		},
		AdvanceStatusFunc: func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
			return apperrors.NewConflictError("order o-1 no longer in status PLACED")
		},
	}
	emitter := &recordingEmitter{}

	svc := NewLifecycleService(store, emitter, zap.NewNop())
	_, err := svc.Cancel(context.Background(), "o-1", "c-1")

	ce, ok := apperrors.IsConflictError(err)
	assert.True(t, ok)
	assert.Equal(t, "order already progressed", ce.Message)
	assert.Empty(t, emitter.events)
}

func TestCancel_ConcurrentRequests_SingleTransition(t *testing.T) {
	// The store's compare-and-set lets exactly one concurrent cancel match.
	var mu sync.Mutex
	currentStatus := domain.StatusPlaced

	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			return placedOrder(), nil
		},
		AdvanceStatusFunc: func(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error {
			mu.Lock()
			defer mu.Unlock()
			if currentStatus != expected {
				return apperrors.NewConflictError("status changed")
			}
			currentStatus = entry.Status
			return nil
		},
	}
	emitter := &recordingEmitter{}

	svc := NewLifecycleService(store, emitter, zap.NewNop())

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Cancel(context.Background(), "o-1", "c-1")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		if err == nil {
			successes++
		} else if _, ok := apperrors.IsConflictError(err); ok {
			conflicts++
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
	assert.Equal(t, domain.StatusCancelled, currentStatus)
}

func TestGet_PassesThrough(t *testing.T) {
	store := &mockOrderStore{
		FindByIDFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			assert.Equal(t, "o-1", id)
			return placedOrder(), nil
		},
	}

	svc := NewLifecycleService(store, &recordingEmitter{}, zap.NewNop())
	order, err := svc.Get(context.Background(), "o-1")

	assert.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)
}
