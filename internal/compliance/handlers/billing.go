package handlers

import (
	"net/http"

	"github.com/rbarros/vigia/internal/compliance/billing"
)

type checkoutRequest struct {
	PlanID string `json:"plan_id"`
}

type checkoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type confirmRequest struct {
	SessionID string `json:"session_id"`
}

// ListPlans handles GET /v1/billing/plans. The catalog is public to
// authenticated tenants.
func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, billing.Plans)
}

// Checkout handles POST /v1/billing/checkout, opening a payment session for
// the chosen plan.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	session, err := h.billing.Checkout(r.Context(), companyID, req.PlanID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, checkoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	})
}

// ConfirmPayment handles POST /v1/billing/verify, applying a completed
// checkout session to the tenant's subscription.
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req confirmRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	company, err := h.billing.Confirm(r.Context(), companyID, req.SessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companyToResponse(company))
}
