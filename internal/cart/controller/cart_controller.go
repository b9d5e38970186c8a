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

type CartUseCase interface {
	Add(ctx context.Context, customerID, productID string, quantity *int) error
	Remove(ctx context.Context, customerID, productID string) error
	List(ctx context.Context, customerID string) (*dto.CartResponse, error)
}

type CartController struct {
	cart   CartUseCase
	logger *zap.Logger
}

func NewCartController(cart CartUseCase, logger *zap.Logger) *CartController {
	return &CartController{cart: cart, logger: logger}
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		httpx.WriteValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if details := validateMembership(req.CustomerID, req.ProductID); len(details) > 0 {
		httpx.WriteValidationError(w, traceID, "validation failed", details...)
		return
	}

	if err := c.cart.Add(r.Context(), req.CustomerID, req.ProductID, req.Quantity); err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	cart, err := c.cart.List(r.Context(), req.CustomerID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, cart)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.RemoveCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		httpx.WriteValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if details := validateMembership(req.CustomerID, req.ProductID); len(details) > 0 {
		httpx.WriteValidationError(w, traceID, "validation failed", details...)
		return
	}

	if err := c.cart.Remove(r.Context(), req.CustomerID, req.ProductID); err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
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

	cart, err := c.cart.List(r.Context(), customerID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cart)
}

func validateMembership(customerID, productID string) []apperrors.ValidationDetail {
	var details []apperrors.ValidationDetail
	if customerID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId is required",
		})
	}
	if productID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId is required",
		})
	}
	return details
}
