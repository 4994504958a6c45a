package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// SaveTraining handles POST /v1/trainings. A payload without an id creates
// a record; one with an id updates it.
func (h *Handler) SaveTraining(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req trainingRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	training, err := req.toModel()
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	creating := training.ID == uuid.Nil
	saved, err := h.trainings.Save(r.Context(), companyID, training)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	status := http.StatusOK
	if creating {
		status = http.StatusCreated
	}
	h.writeJSON(w, status, trainingToResponse(saved))
}

// GetTraining handles GET /v1/trainings/{id}.
func (h *Handler) GetTraining(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	training, err := h.trainings.Get(r.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, trainingToResponse(training))
}

// DeleteTraining handles DELETE /v1/trainings/{id}.
func (h *Handler) DeleteTraining(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	if err := h.trainings.Delete(r.Context(), companyID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusNoContent, nil)
}

// ListTrainings handles GET /v1/trainings.
func (h *Handler) ListTrainings(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	trainings, err := h.trainings.List(r.Context(), companyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]trainingResponse, 0, len(trainings))
	for i := range trainings {
		resp = append(resp, trainingToResponse(&trainings[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ListEmployeeTrainings handles GET /v1/employees/{id}/trainings.
func (h *Handler) ListEmployeeTrainings(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	employeeID, err := pathID(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	trainings, err := h.trainings.ListByEmployee(r.Context(), companyID, employeeID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp := make([]trainingResponse, 0, len(trainings))
	for i := range trainings {
		resp = append(resp, trainingToResponse(&trainings[i]))
	}
	h.writeJSON(w, http.StatusOK, resp)
}
