package notification

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"farmfresh/internal/domain"
	apperrors "farmfresh/internal/errors"
	"farmfresh/internal/httpx"
)

// Controller serves the in-app notification feed.
type Controller struct {
	repo   Repository
	logger *zap.Logger
}

func NewController(repo Repository, logger *zap.Logger) *Controller {
	return &Controller{repo: repo, logger: logger}
}

func (c *Controller) ListByRecipient(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	recipientID := chi.URLParam(r, "recipientId")
	if recipientID == "" {
		httpx.WriteValidationError(w, traceID, "invalid recipientId", apperrors.ValidationDetail{
			Field:   "recipientId",
			Message: "recipientId is required",
		})
		return
	}

	notifications, err := c.repo.FindByRecipient(r.Context(), recipientID)
	if err != nil {
		httpx.WriteError(w, traceID, err, logger)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}

	httpx.WriteJSON(w, http.StatusOK, notifications)
}
