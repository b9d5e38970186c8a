package service

import (
	"context"

	"go.uber.org/zap"

	"farmfresh/internal/domain"
	"farmfresh/internal/dto"
)

type WishlistRepository interface {
	Find(ctx context.Context, customerID string) (*domain.Wishlist, error)
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// WishlistService owns wishlist membership: a set of products per customer
// with idempotent add and remove.
type WishlistService struct {
	wishlists WishlistRepository
	products  ProductReader
	logger    *zap.Logger
}

func NewWishlistService(wishlists WishlistRepository, products ProductReader, logger *zap.Logger) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products, logger: logger}
}

func (s *WishlistService) Add(ctx context.Context, customerID, productID string) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.wishlists.Add(ctx, customerID, productID)
}

func (s *WishlistService) Remove(ctx context.Context, customerID, productID string) error {
	return s.wishlists.Remove(ctx, customerID, productID)
}

func (s *WishlistService) List(ctx context.Context, customerID string) (*dto.WishlistResponse, error) {
	wishlist, err := s.wishlists.Find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	products, err := s.products.FindByIDs(ctx, wishlist.ProductIDs)
	if err != nil {
		return nil, err
	}

	resp := &dto.WishlistResponse{CustomerID: customerID, Items: []dto.CartLine{}}
	for _, id := range wishlist.ProductIDs {
		product, ok := products[id]
		if !ok {
			s.logger.Debug("wishlist references missing product",
				zap.String("customerId", customerID),
				zap.String("productId", id))
			continue
		}
		resp.Items = append(resp.Items, dto.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  1,
			LineTotal: product.Price,
			ImageURL:  product.ImageURL,
		})
	}
	return resp, nil
}
