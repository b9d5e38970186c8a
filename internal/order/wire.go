package order

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	cartrepo "farmfresh/internal/cart/repository"
	catalogrepo "farmfresh/internal/catalog/repository"
	"farmfresh/internal/config"
	"farmfresh/internal/notification"
	"farmfresh/internal/order/controller"
	"farmfresh/internal/order/repository"
	"farmfresh/internal/order/scheduler"
	"farmfresh/internal/order/service"
)

// NewModule wires the order feature: HTTP controller plus the background
// scheduler that drives automatic lifecycle progress.
func NewModule(
	db *mongo.Database,
	cfg *config.Config,
	emitter notification.Emitter,
	logger *zap.Logger,
) (*controller.OrderController, *scheduler.Scheduler) {
	orderRepo := repository.NewMongoOrderRepository(db)
	productRepo := catalogrepo.NewMongoProductRepository(db)
	cartRepo := cartrepo.NewMongoCartRepository(db)

	checkout := service.NewCheckoutService(orderRepo, productRepo, cartRepo, emitter, logger)
	lifecycle := service.NewLifecycleService(orderRepo, emitter, logger)
	sched := scheduler.New(orderRepo, emitter, cfg.Lifecycle, logger)

	return controller.NewOrderController(checkout, lifecycle, logger), sched
}
