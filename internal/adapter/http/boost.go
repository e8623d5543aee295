package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"mesa-boost/internal/core/port"
)

const idempotencyHeader = "Idempotency-Key"

// handlePackages lists the boost catalog.
func (h *Handler) handlePackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.svc.Packages(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pkgs)
}

// handleEligibility answers the advisory pre-check. An ineligible profile
// is a normal 200 response carrying the reason.
func (h *Handler) handleEligibility(w http.ResponseWriter, r *http.Request) {
	el, err := h.svc.Eligibility(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, el)
}

// handlePurchase buys a boost. The idempotency key may come from the body
// or the Idempotency-Key header; when both are present they must match.
// Replays of a completed key return the same body as the first call.
func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	var req port.PurchaseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON"})
		return
	}
	if key := r.Header.Get(idempotencyHeader); key != "" {
		if req.IdempotencyKey != "" && req.IdempotencyKey != key {
			writeJSON(w, http.StatusBadRequest, errorResp{Error: "idempotency key in header and body differ"})
			return
		}
		req.IdempotencyKey = key
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: validationMessage(err)})
		return
	}
	if !h.limiter.allowKey(req.ProfileID, req.IdempotencyKey) {
		writeJSON(w, http.StatusTooManyRequests, errorResp{Error: "too many requests"})
		return
	}

	boost, err := h.svc.Purchase(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, boost)
}

func (h *Handler) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "profileID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context(), chi.URLParam(r, "profileID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleHistory returns a page of past and current boosts. page and
// page_size are optional; invalid values are rejected.
func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	req := port.HistoryReq{ProfileID: chi.URLParam(r, "profileID")}
	var err error
	if req.Page, err = intParam(r, "page"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid page"})
		return
	}
	if req.PageSize, err = intParam(r, "page_size"); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid page_size"})
		return
	}
	resp, err := h.svc.History(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func intParam(r *http.Request, name string) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.New("invalid integer")
	}
	return n, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " is too long"
	}
	return fe.Field() + " is invalid"
}
