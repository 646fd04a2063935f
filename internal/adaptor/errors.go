package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"room-booking/internal/usecase"
	"room-booking/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps the usecase error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrSlotConflict),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrDuplicateIdentity),
		errors.Is(err, usecase.ErrAlreadyRated):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrNotVerified),
		errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrInvalidRating):
		log.Warn(operation+" failed - rejected", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
