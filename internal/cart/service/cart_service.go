package service

import (
	"context"

	"go.uber.org/zap"

	"farmfresh/internal/domain"
	"farmfresh/internal/dto"
	apperrors "farmfresh/internal/errors"
)

type CartRepository interface {
	Find(ctx context.Context, customerID string) (*domain.Cart, error)
	UpsertItem(ctx context.Context, customerID, productID string, quantity int) error
	RemoveItem(ctx context.Context, customerID, productID string) error
	Clear(ctx context.Context, customerID string) error
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// CartService owns cart membership. Add and Remove are idempotent; List
// joins the live catalog, so prices shown here are estimates that move with
// the catalog, unlike the snapshot taken at order placement.
type CartService struct {
	carts    CartRepository
	products ProductReader
	logger   *zap.Logger
}

func NewCartService(carts CartRepository, products ProductReader, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

// Add puts a product in the cart. A nil quantity leaves an existing entry
// untouched and defaults a new one to 1; a set quantity overwrites.
func (s *CartService) Add(ctx context.Context, customerID, productID string, quantity *int) error {
	if quantity != nil && *quantity < 1 {
		return apperrors.NewValidationError("validation failed", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}

	if quantity == nil {
		cart, err := s.carts.Find(ctx, customerID)
		if err != nil {
			return err
		}
		for _, item := range cart.Items {
			if item.ProductID == productID {
				return nil
			}
		}
		return s.carts.UpsertItem(ctx, customerID, productID, 1)
	}

	return s.carts.UpsertItem(ctx, customerID, productID, *quantity)
}

func (s *CartService) Remove(ctx context.Context, customerID, productID string) error {
	return s.carts.RemoveItem(ctx, customerID, productID)
}

func (s *CartService) List(ctx context.Context, customerID string) (*dto.CartResponse, error) {
	cart, err := s.carts.Find(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &dto.CartResponse{CustomerID: customerID, Items: []dto.CartLine{}}
	for _, item := range cart.Items {
		product, ok := products[item.ProductID]
		if !ok {
			// Product gone from the catalog since it was added; hide it
			// rather than fail the whole listing.
			s.logger.Debug("cart references missing product",
				zap.String("customerId", customerID),
				zap.String("productId", item.ProductID))
			continue
		}
		line := dto.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
			LineTotal: domain.Round2(product.Price * float64(item.Quantity)),
			ImageURL:  product.ImageURL,
		}
		resp.Items = append(resp.Items, line)
		resp.EstimatedTotal = domain.Round2(resp.EstimatedTotal + line.LineTotal)
	}
	return resp, nil
}
