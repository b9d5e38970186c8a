package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
	"farmfresh/internal/dto"
	apperrors "farmfresh/internal/errors"
	"farmfresh/internal/httpx"
)

type CheckoutUseCase interface {
	Place(ctx context.Context, req dto.NewOrderRequest) (*domain.Order, error)
}

type LifecycleUseCase interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
	Cancel(ctx context.Context, orderID, requesterID string) (*domain.Order, error)
}

type OrderController struct {
	checkout  CheckoutUseCase
	lifecycle LifecycleUseCase
	logger    *zap.Logger
}

func NewOrderController(checkout CheckoutUseCase, lifecycle LifecycleUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		checkout:  checkout,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.NewOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		httpx.WriteValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateNewOrderRequest(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		httpx.WriteValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	order, err := c.checkout.Place(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, order)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		httpx.WriteValidationError(w, traceID, "invalid orderId", apperrors.ValidationDetail{
			Field:   "orderId",
			Message: "orderId is required",
		})
		return
	}

	order, err := c.lifecycle.Get(r.Context(), orderID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

func (c *OrderController) ListByCustomer(w http.ResponseWriter, r *http.Request) {
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

	orders, err := c.lifecycle.ListByCustomer(r.Context(), customerID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID := chi.URLParam(r, "orderId")

	var req dto.CancelOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		httpx.WriteValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.RequesterID == "" {
		httpx.WriteValidationError(w, traceID, "validation failed", apperrors.ValidationDetail{
			Field:   "requesterId",
			Message: "requesterId is required",
		})
		return
	}

	order, err := c.lifecycle.Cancel(r.Context(), orderID, req.RequesterID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}

func validateNewOrderRequest(req dto.NewOrderRequest) error {
	var details []apperrors.ValidationDetail

	if req.CustomerID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "customerId",
			Message: "customerId is required",
		})
	}

	if !req.FromCart && len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty unless fromCart is set",
		})
	}

	for i, item := range req.Items {
		if item.ProductID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(i) + "].productId",
				Message: "productId is required",
			})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "items[" + strconv.Itoa(i) + "].quantity",
				Message: "quantity must be at least 1",
			})
		}
	}

	if req.Address == "" || req.ContactName == "" || req.ContactEmail == "" || req.ContactPhone == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "contact",
			Message: "name, email, phone and address are required",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
