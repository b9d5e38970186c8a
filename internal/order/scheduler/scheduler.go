package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"farmfresh/internal/config"
	"farmfresh/internal/domain"
	apperrors "farmfresh/internal/errors"
	"farmfresh/internal/notification"
)

type OrderStore interface {
	FindByStatusIn(ctx context.Context, statuses []domain.Status) ([]domain.Order, error)
	AdvanceStatus(ctx context.Context, id string, expected domain.Status, entry domain.StatusEntry) error
}

// Scheduler drives the automatic side of the order lifecycle: on every tick
// it scans non-terminal orders and advances each due order by exactly one
// stage. Concurrent cancels are resolved by the store's compare-and-set, so
// a lost race is a no-op here, never a duplicate transition.
type Scheduler struct {
	store   OrderStore
	emitter notification.Emitter
	cfg     config.LifecycleConfig
	logger  *zap.Logger
	now     func() time.Time
}

func New(store OrderStore, emitter notification.Emitter, cfg config.LifecycleConfig, logger *zap.Logger) *Scheduler {
	if cfg.MaxInFlight < 1 {
		cfg.MaxInFlight = 1
	}
	return &Scheduler{
		store:   store,
		emitter: emitter,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the wall clock, letting tests advance virtual time
// instead of sleeping.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Run blocks, executing one tick per interval until ctx is cancelled. A tick
// always finishes before the next starts: Tick runs on this goroutine, and
// ticker fires that land mid-tick are dropped, not queued behind it.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("order scheduler started",
		zap.Duration("tickInterval", s.cfg.TickInterval),
		zap.Duration("confirmAfter", s.cfg.ConfirmAfter),
		zap.Duration("shipAfter", s.cfg.ShipAfter),
		zap.Duration("deliverAfter", s.cfg.DeliverAfter))

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("order scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// TickResult reports what one scan did. Failures are transient per-order
// problems already logged; they never abort the tick.
type TickResult struct {
	Scanned   int
	Advanced  int
	Conflicts int
	Failures  int
}

func (s *Scheduler) Tick(ctx context.Context) TickResult {
	orders, err := s.store.FindByStatusIn(ctx, domain.ActiveStatuses())
	if err != nil {
		s.logger.Warn("scanning active orders", zap.Error(err))
		return TickResult{Failures: 1}
	}

	result := TickResult{Scanned: len(orders)}
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.MaxInFlight)
	for _, order := range orders {
		order := order
		g.Go(func() error {
			outcome := s.advance(ctx, order)
			mu.Lock()
			switch outcome {
			case advanced:
				result.Advanced++
			case conflicted:
				result.Conflicts++
			case failed:
				result.Failures++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if result.Advanced > 0 || result.Failures > 0 {
		s.logger.Info("scheduler tick finished",
			zap.Int("scanned", result.Scanned),
			zap.Int("advanced", result.Advanced),
			zap.Int("conflicts", result.Conflicts),
			zap.Int("failures", result.Failures))
	}
	return result
}

type outcome int

const (
	skipped outcome = iota
	advanced
	conflicted
	failed
)

// advance applies at most one automatic transition to one order. An order
// overdue for several stages still moves a single stage; every status must
// be observable by the notification and tracking surfaces.
func (s *Scheduler) advance(ctx context.Context, order domain.Order) outcome {
	threshold, ok := s.threshold(order.Status)
	if !ok {
		return skipped
	}
	if order.Elapsed(s.now()) < threshold {
		return skipped
	}

	event, ok := domain.NextAutoEvent(order.Status)
	if !ok {
		return skipped
	}
	next, err := domain.Next(order.Status, event)
	if err != nil {
		s.logger.Warn("resolving automatic transition",
			zap.String("orderId", order.ID),
			zap.String("status", string(order.Status)),
			zap.Error(err))
		return failed
	}

	entry := domain.StatusEntry{Status: next, At: s.now().UTC()}

	updateCtx, cancel := context.WithTimeout(ctx, s.cfg.UpdateTimeout)
	defer cancel()

	if err := s.store.AdvanceStatus(updateCtx, order.ID, order.Status, entry); err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			// The order moved concurrently (e.g. cancelled); nothing to do.
			s.logger.Debug("order moved concurrently, skipping",
				zap.String("orderId", order.ID),
				zap.String("expectedStatus", string(order.Status)))
			return conflicted
		}
		s.logger.Warn("advancing order status",
			zap.String("orderId", order.ID),
			zap.String("from", string(order.Status)),
			zap.String("to", string(next)),
			zap.Error(err))
		return failed
	}

	s.emitter.OrderStatusChanged(ctx, domain.OrderStatusEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		FarmerIDs:  order.FarmerIDs,
		NewStatus:  next,
		Timestamp:  entry.At,
	})

	s.logger.Info("order advanced",
		zap.String("orderId", order.ID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))
	return advanced
}

func (s *Scheduler) threshold(status domain.Status) (time.Duration, bool) {
	switch status {
	case domain.StatusPlaced:
		return s.cfg.ConfirmAfter, true
	case domain.StatusConfirmed:
		return s.cfg.ShipAfter, true
	case domain.StatusShipped:
		return s.cfg.DeliverAfter, true
	default:
		return 0, false
	}
}
