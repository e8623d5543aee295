package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"mesa-boost/internal/core/domain"
)

type errorResp struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	// the status line is already sent; nothing useful can be done on failure
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error to a status and a client-safe message.
// Unexpected errors are logged and reported as 500 without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ie *domain.IneligibleError
	switch {
	case errors.As(err, &ie):
		writeJSON(w, http.StatusConflict, errorResp{Error: "not eligible", Reason: ie.Reason})
	case errors.Is(err, domain.ErrInsufficientBalance):
		writeJSON(w, http.StatusPaymentRequired, errorResp{Error: "insufficient balance"})
	case errors.Is(err, domain.ErrConcurrentPurchaseConflict):
		writeJSON(w, http.StatusConflict, errorResp{Error: "conflicting request, try again"})
	case errors.Is(err, domain.ErrTimeout):
		writeJSON(w, http.StatusServiceUnavailable, errorResp{Error: "temporarily unavailable, try again"})
	case errors.Is(err, domain.ErrNoActiveBoost):
		writeJSON(w, http.StatusNotFound, errorResp{Error: "no active boost"})
	case errors.Is(err, domain.ErrPackageNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: "package not found"})
	case errors.Is(err, domain.ErrProfileNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: "profile not found"})
	case errors.Is(err, domain.ErrIdempotencyKeyReused):
		writeJSON(w, http.StatusUnprocessableEntity, errorResp{Error: "idempotency key already used for a different request"})
	case errors.Is(err, domain.ErrInvalidRequest):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
	default:
		h.logger.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal error"})
	}
}
