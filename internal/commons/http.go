package commons

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"crediario/internal/dto"
	apperrors "crediario/internal/errors"
)

// Responder writes JSON responses and maps application errors to HTTP
// status codes. It is shared by every controller.
type Responder struct {
	logger *zap.Logger
}

func NewResponder(logger *zap.Logger) *Responder {
	return &Responder{logger: logger}
}

// Trace returns a fresh trace id and a logger carrying it.
func (rs *Responder) Trace() (string, *zap.Logger) {
	traceID := uuid.New().String()
	return traceID, rs.logger.With(zap.String("traceId", traceID))
}

// Decode reads a JSON body into v. On failure it writes a 400 and returns
// false.
func (rs *Responder) Decode(w http.ResponseWriter, r *http.Request, traceID string, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		rs.WriteValidationError(w, traceID, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return false
	}
	return true
}

func (rs *Responder) WriteValidationError(w http.ResponseWriter, traceID string, message string, details ...apperrors.ValidationDetail) {
	rs.writeError(w, traceID, http.StatusBadRequest, "VALIDATION_ERROR", message, details)
}

// WriteError maps err onto a status code. Unexpected errors are logged and
// answered with a generic message.
func (rs *Responder) WriteError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		rs.WriteValidationError(w, traceID, ve.Message, ve.Details...)
		return
	}

	if _, ok := apperrors.IsNotFoundError(err); ok {
		rs.writeError(w, traceID, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsConflictError(err); ok {
		rs.writeError(w, traceID, http.StatusConflict, "CONFLICT", err.Error(), nil)
		return
	}

	if _, ok := apperrors.IsPersistenceError(err); ok {
		logger.Error("persistence failure", zap.Error(err))
		rs.writeError(w, traceID, http.StatusServiceUnavailable, "PERSISTENCE_ERROR", "the store is unavailable, nothing was changed", nil)
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	rs.writeError(w, traceID, http.StatusInternalServerError, "INTERNAL_ERROR", "an unexpected error occurred", nil)
}

func (rs *Responder) writeError(w http.ResponseWriter, traceID string, status int, code string, message string, details []apperrors.ValidationDetail) {
	rs.WriteJSON(w, status, dto.ErrorResponse{
		TraceID:   traceID,
		Status:    status,
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}

func (rs *Responder) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		rs.logger.Error("failed to encode response", zap.Error(err))
	}
}
