package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// SaveCertificate handles POST /v1/certificates. A payload without an id
// creates a certificate, archiving any previous one for the same employee;
// a payload with an id edits the record in place wherever it lives.
func (h *Handler) SaveCertificate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req certificateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	cert, err := req.toModel()
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	creating := cert.ID == uuid.Nil
	saved, err := h.certificates.Save(r.Context(), companyID, cert)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	status := http.StatusOK
	if creating {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, certificateToResponse(saved))
}

// DeleteCertificate handles DELETE /v1/certificates/{id}. Deleting an id
// that exists in neither set still succeeds.
func (h *Handler) DeleteCertificate(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	if err := h.certificates.Delete(r.Context(), companyID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// ListCertificates handles GET /v1/certificates. The set query parameter
// selects the active set (default) or the history set.
func (h *Handler) ListCertificates(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	resp := make([]certificateResponse, 0)
	switch set := r.URL.Query().Get("set"); set {
	case "", "active":
		certs, err := h.certificates.ListActive(r.Context(), companyID)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		for i := range certs {
			resp = append(resp, certificateToResponse(&certs[i]))
		}
	case "history":
		archived, err := h.certificates.ListHistory(r.Context(), companyID)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		for i := range archived {
			resp = append(resp, archivedToResponse(&archived[i]))
		}
	default:
		h.writeBadRequest(w, "set must be active or history")
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ListEmployeeCertificates handles GET /v1/employees/{id}/certificates,
// returning the employee's active certificate followed by its history.
func (h *Handler) ListEmployeeCertificates(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	employeeID, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	active, archived, err := h.certificates.ListByEmployee(r.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]certificateResponse, 0, len(active)+len(archived))
	for i := range active {
		resp = append(resp, certificateToResponse(&active[i]))
	}
	for i := range archived {
		resp = append(resp, archivedToResponse(&archived[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}
