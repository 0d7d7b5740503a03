package handler

import (
	"net/http"
	"strconv"

	"github.com/ayo6706/vendor-payouts/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutHandler exposes the payout workflow over HTTP.
type PayoutHandler struct {
	payoutSvc *service.PayoutService
}

func NewPayoutHandler(payoutSvc *service.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutSvc: payoutSvc}
}

// CreatePayoutRequest is the body of POST /v1/payouts. Amount accepts a JSON
// number or a decimal string.
type CreatePayoutRequest struct {
	VendorID uuid.UUID       `json:"vendor_id"`
	Amount   decimal.Decimal `json:"amount"`
	Mode     string          `json:"mode" validate:"required"`
	Note     *string         `json:"note,omitempty" validate:"omitempty,max=1000"`
}

type RejectPayoutRequest struct {
	Reason string `json:"reason" validate:"max=1000"`
}

// ListPayouts handles GET /v1/payouts.
func (h *PayoutHandler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.ListPayoutsFilter{Status: q.Get("status")}

	if raw := q.Get("vendor_id"); raw != "" {
		vendorID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(w, r, http.StatusBadRequest, "request/invalid-query", "vendor_id must be a UUID")
			return
		}
		filter.VendorID = &vendorID
	}
	for name, dst := range map[string]*int32{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || n < 0 {
			RespondError(w, r, http.StatusBadRequest, "request/invalid-query", name+" must be a non-negative integer")
			return
		}
		*dst = int32(n)
	}

	payouts, err := h.payoutSvc.ListPayouts(r.Context(), filter)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"payouts": payouts})
}

// CreatePayout handles POST /v1/payouts.
func (h *PayoutHandler) CreatePayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	var req CreatePayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	payout, err := h.payoutSvc.CreatePayout(r.Context(), actor, service.CreatePayoutInput{
		VendorID: req.VendorID,
		Amount:   req.Amount,
		Mode:     req.Mode,
		Note:     req.Note,
	})
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]any{"payout": payout})
}

// GetPayout handles GET /v1/payouts/{id}.
func (h *PayoutHandler) GetPayout(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.payoutSvc.GetPayout(r.Context(), id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, detail)
}

// SubmitPayout handles POST /v1/payouts/{id}/submit.
func (h *PayoutHandler) SubmitPayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	payout, err := h.payoutSvc.SubmitPayout(r.Context(), actor, id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"payout": payout})
}

// ApprovePayout handles POST /v1/payouts/{id}/approve.
func (h *PayoutHandler) ApprovePayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	payout, err := h.payoutSvc.ApprovePayout(r.Context(), actor, id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"payout": payout})
}

// RejectPayout handles POST /v1/payouts/{id}/reject.
func (h *PayoutHandler) RejectPayout(w http.ResponseWriter, r *http.Request) {
	actor, ok := requestActor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req RejectPayoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	payout, err := h.payoutSvc.RejectPayout(r.Context(), actor, id, req.Reason)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"payout": payout})
}
