// Package httpx holds the response-writing helpers shared by the HTTP
// controllers: JSON encoding plus the mapping from the error taxonomy to
// status codes.
package httpx

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	apperrors "farmfresh/internal/errors"
)

type errorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func WriteValidationError(w http.ResponseWriter, traceID, message string, details ...apperrors.ValidationDetail) {
	WriteJSON(w, http.StatusBadRequest, errorResponse{
		TraceID: traceID,
		Error:   message,
		Details: details,
	})
}

// WriteError maps a service error onto an HTTP status. Unrecognized errors
// become opaque 500s; the cause goes to the log, not the client.
func WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		WriteValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}
	if eo, ok := apperrors.IsEmptyOrderError(err); ok {
		WriteJSON(w, http.StatusBadRequest, errorResponse{TraceID: traceID, Error: eo.Message})
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		WriteJSON(w, http.StatusNotFound, errorResponse{TraceID: traceID, Error: nf.Message})
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		WriteJSON(w, http.StatusConflict, errorResponse{TraceID: traceID, Error: ce.Message})
		return
	}
	if it, ok := apperrors.IsInvalidTransitionError(err); ok {
		WriteJSON(w, http.StatusConflict, errorResponse{TraceID: traceID, Error: it.Error()})
		return
	}
	if _, ok := apperrors.IsTransientError(err); ok {
		logger.Warn("transient store error", zap.Error(err))
		WriteJSON(w, http.StatusServiceUnavailable, errorResponse{TraceID: traceID, Error: "temporarily unavailable, please retry"})
		return
	}

	logger.Error("unhandled error", zap.Error(err))
	WriteJSON(w, http.StatusInternalServerError, errorResponse{TraceID: traceID, Error: "internal server error"})
}
