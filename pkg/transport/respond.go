package transport

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"marketplace/pkg/domain/model"
	"marketplace/pkg/domain/service"
)

type errorResponse struct {
	Error     string `json:"error"`
	ProductID string `json:"product_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError maps domain errors to HTTP statuses. Transient storage
// failures hide their underlying cause behind a generic message.
func writeError(w http.ResponseWriter, err error) {
	var notFound model.ProductNotFoundError
	if errors.As(err, &notFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound.Error(), ProductID: notFound.ProductID.String()})
		return
	}
	var insufficient model.InsufficientStockError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: insufficient.Error(), ProductID: insufficient.ProductID.String()})
		return
	}

	switch {
	case errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrUserNotFound),
		errors.Is(err, model.ErrCategoryNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrOrderIsEmpty),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrDuplicateProduct),
		errors.Is(err, service.ErrIncompleteShipping),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNegativeStock),
		errors.Is(err, service.ErrEmptyName),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, model.ErrInvalidOrderStatus):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrTransactionConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "order conflicted with a concurrent request, please retry"})
	case errors.Is(err, model.ErrStorageUnavailable):
		log.WithError(err).Error("Storage unavailable")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	default:
		log.WithError(err).Error("Unhandled error")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
