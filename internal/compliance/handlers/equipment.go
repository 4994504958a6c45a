package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// SaveEquipment handles POST /v1/equipment. A payload without an id creates
// an issuance; one with an id updates it.
func (h *Handler) SaveEquipment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req equipmentRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	equipment, err := req.toModel()
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	creating := equipment.ID == uuid.Nil
	saved, err := h.equipment.Save(r.Context(), companyID, equipment)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	status := http.StatusOK
	if creating {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, equipmentToResponse(saved))
}

// GetEquipment handles GET /v1/equipment/{id}.
func (h *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	equipment, err := h.equipment.Get(r.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, equipmentToResponse(equipment))
}

// DeleteEquipment handles DELETE /v1/equipment/{id}.
func (h *Handler) DeleteEquipment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	if err := h.equipment.Delete(r.Context(), companyID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// ListEquipment handles GET /v1/equipment.
func (h *Handler) ListEquipment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	issuances, err := h.equipment.List(r.Context(), companyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]equipmentResponse, 0, len(issuances))
	for i := range issuances {
		resp = append(resp, equipmentToResponse(&issuances[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ListEmployeeEquipment handles GET /v1/employees/{id}/equipment.
func (h *Handler) ListEmployeeEquipment(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	employeeID, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	issuances, err := h.equipment.ListByEmployee(r.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]equipmentResponse, 0, len(issuances))
	for i := range issuances {
		resp = append(resp, equipmentToResponse(&issuances[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}
