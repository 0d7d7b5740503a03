package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ayo6706/vendor-payouts/internal/service"
)

type VendorHandler struct {
	vendorSvc *service.VendorService
}

func NewVendorHandler(vendorSvc *service.VendorService) *VendorHandler {
	return &VendorHandler{vendorSvc: vendorSvc}
}

// VendorRequest is the body of vendor create and update. Update replaces every field.
type VendorRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	UPIID       *string `json:"upi_id,omitempty" validate:"omitempty,max=100"`
	BankAccount *string `json:"bank_account,omitempty" validate:"omitempty,max=34"`
	IFSC        *string `json:"ifsc,omitempty" validate:"omitempty,max=11"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

func (req VendorRequest) input() service.VendorInput {
	return service.VendorInput{
		Name:        req.Name,
		UPIID:       req.UPIID,
		BankAccount: req.BankAccount,
		IFSC:        req.IFSC,
		IsActive:    req.IsActive,
	}
}

// ListVendors handles GET /v1/vendors?active=true.
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	activeOnly := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(w, r, http.StatusBadRequest, "request/invalid-query", "active must be a boolean")
			return
		}
		activeOnly = v
	}
	vendors, err := h.vendorSvc.ListVendors(r.Context(), activeOnly)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"vendors": vendors})
}

func (h *VendorHandler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var req VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vendor, err := h.vendorSvc.CreateVendor(r.Context(), req.input())
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]any{"vendor": vendor})
}

func (h *VendorHandler) GetVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	vendor, err := h.vendorSvc.GetVendor(r.Context(), id)
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"vendor": vendor})
}

func (h *VendorHandler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req VendorRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	vendor, err := h.vendorSvc.UpdateVendor(r.Context(), id, req.input())
	if err != nil {
		RespondDomainError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]any{"vendor": vendor})
}

func (h *VendorHandler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	if err := h.vendorSvc.DeleteVendor(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrVendorInUse) {
			RespondError(w, r, http.StatusConflict, "vendor/in-use", "vendor has payouts and cannot be deleted")
			return
		}
		RespondDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
