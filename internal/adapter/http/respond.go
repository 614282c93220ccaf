package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"collabpay/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps domain error kinds onto HTTP statuses so clients can
// distinguish "top up and retry" from "never retry". Unknown errors are
// logged and collapsed to 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrInvalidState),
		errors.Is(err, domain.ErrAlreadyApplied),
		errors.Is(err, domain.ErrWinnerNotApplicant),
		errors.Is(err, domain.ErrTooManyWinners),
		errors.Is(err, domain.ErrBonusAlreadyPaid),
		errors.Is(err, domain.ErrNotAWinner):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrOutsideWindow):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientEscrow):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("request error", slog.String("path", r.URL.Path), slog.Any("error", err))
		h.writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}
