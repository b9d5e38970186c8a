package cart

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"farmfresh/internal/cart/controller"
	"farmfresh/internal/cart/repository"
	"farmfresh/internal/cart/service"
	catalogrepo "farmfresh/internal/catalog/repository"
)

func NewModule(db *mongo.Database, logger *zap.Logger) *controller.CartController {
	cartRepo := repository.NewMongoCartRepository(db)
	productRepo := catalogrepo.NewMongoProductRepository(db)
	svc := service.NewCartService(cartRepo, productRepo, logger)
	return controller.NewCartController(svc, logger)
}
