package handlers

import (
	"net/http"

	"github.com/rbarros/vigia/internal/compliance/models"
)

// GetOwnCompany handles GET /v1/company, returning the caller's tenant.
func (h *Handler) GetOwnCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	company, err := h.companies.Get(r.Context(), companyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companyToResponse(company))
}

// UpdateOwnCompany handles PATCH /v1/company. Billing fields are not editable
// here; they change only through payment confirmation.
func (h *Handler) UpdateOwnCompany(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req companyRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	update := &models.CompanyUpdate{
		ID:    companyID,
		Name:  &req.Name,
		TaxID: &req.TaxID,
	}
	company, err := h.companies.Update(r.Context(), companyID, update)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companyToResponse(company))
}

// CreateCompany handles POST /v1/companies (admin only).
func (h *Handler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	company := &models.Company{
		Name:  req.Name,
		TaxID: req.TaxID,
		Plan:  req.Plan,
	}
	created, err := h.companies.Create(r.Context(), company)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, companyToResponse(created))
}

// ListCompanies handles GET /v1/companies (admin only).
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.companies.List(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]companyResponse, 0, len(companies))
	for i := range companies {
		resp = append(resp, companyToResponse(&companies[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// SetCompanyActive handles PUT /v1/companies/{id}/active (admin only).
func (h *Handler) SetCompanyActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	if req.Active == nil {
		h.writeBadRequest(w, "active flag required")
		return
	}
	company, err := h.companies.SetActive(r.Context(), id, *req.Active)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, companyToResponse(company))
}
