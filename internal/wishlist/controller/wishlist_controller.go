package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmfresh/internal/dto"
	apperrors "farmfresh/internal/errors"
	"farmfresh/internal/httpx"
)

type WishlistUseCase interface {
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
	List(ctx context.Context, customerID string) (*dto.WishlistResponse, error)
}

type WishlistController struct {
	wishlist WishlistUseCase
	logger   *zap.Logger
}

func NewWishlistController(wishlist WishlistUseCase, logger *zap.Logger) *WishlistController {
	return &WishlistController{wishlist: wishlist, logger: logger}
}

func (c *WishlistController) Add(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.wishlist.Add)
}

func (c *WishlistController) Remove(w http.ResponseWriter, r *http.Request) {
	c.mutate(w, r, c.wishlist.Remove)
}

func (c *WishlistController) mutate(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, customerID, productID string) error) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.WishlistEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		httpx.WriteValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	if req.CustomerID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customerId", Message: "customerId is required"})
	}
	if req.ProductID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "productId", Message: "productId is required"})
	}
	if len(details) > 0 {
		httpx.WriteValidationError(w, traceID, "validation failed", details...)
		return
	}

	if err := op(r.Context(), req.CustomerID, req.ProductID); err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	list, err := c.wishlist.List(r.Context(), req.CustomerID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	customerID := chi.URLParam(r, "customerId")
	if customerID == "" {
		httpx.WriteValidationError(w, traceID, "invalid customerId", apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId is required",
		})
		return
	}

	list, err := c.wishlist.List(r.Context(), customerID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, list)
}
