package wishlist

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	catalogrepo "farmfresh/internal/catalog/repository"
	"farmfresh/internal/wishlist/controller"
	"farmfresh/internal/wishlist/repository"
	"farmfresh/internal/wishlist/service"
)

func NewModule(db *mongo.Database, logger *zap.Logger) *controller.WishlistController {
	wishlistRepo := repository.NewMongoWishlistRepository(db)
	productRepo := catalogrepo.NewMongoProductRepository(db)
	svc := service.NewWishlistService(wishlistRepo, productRepo, logger)
	return controller.NewWishlistController(svc, logger)
}
