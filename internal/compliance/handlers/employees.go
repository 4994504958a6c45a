package handlers

import (
	"net/http"
)

// CreateEmployee handles POST /v1/employees.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req employeeRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	employee, err := req.toModel()
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	created, err := h.employees.Create(r.Context(), companyID, employee)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, employeeToResponse(created))
}

// GetEmployee handles GET /v1/employees/{id}.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	employee, err := h.employees.Get(r.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, employeeToResponse(employee))
}

// UpdateEmployee handles PUT /v1/employees/{id}.
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	var req employeeRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	update, err := req.toUpdate(id)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	updated, err := h.employees.Update(r.Context(), companyID, update)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, employeeToResponse(updated))
}

// DeleteEmployee handles DELETE /v1/employees/{id}. Compliance records of
// the employee are retained.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	if err := h.employees.Delete(r.Context(), companyID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// ListEmployees handles GET /v1/employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	employees, err := h.employees.List(r.Context(), companyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		resp = append(resp, employeeToResponse(&employees[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}
