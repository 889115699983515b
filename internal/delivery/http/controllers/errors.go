package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"zone37/internal/delivery/http/helpers"
	"zone37/internal/domain"
)

// writeServiceError maps service errors onto the API envelope. Unknown errors are logged and
// answered with 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error, notFoundMsg string) {
	var schedErr *domain.ScheduleError
	switch {
	case errors.As(err, &schedErr):
		helpers.WriteJSONErrorDetails(w, http.StatusUnprocessableEntity, helpers.ErrCodeInvalidSchedule, schedErr.Result.Reason, schedErr.Result)
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrDuplicateSlug):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrGameNameRequired),
		errors.Is(err, domain.ErrInvalidSlug),
		errors.Is(err, domain.ErrPeriodIndexOutOfRange),
		errors.Is(err, domain.ErrLastPricePeriod),
		errors.Is(err, domain.ErrInvalidTimestamp),
		errors.Is(err, domain.ErrInvalidField):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// pathUUID reads a UUID path value, writing a 400 and returning false when it is missing or malformed.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	v := r.PathValue(name)
	if v == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	if _, err := uuid.Parse(v); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, name+" must be a valid UUID")
		return "", false
	}
	return v, true
}
