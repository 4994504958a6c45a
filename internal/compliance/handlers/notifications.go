package handlers

import (
	"net/http"

	"github.com/rbarros/vigia/internal/compliance/notify"
	"github.com/google/uuid"
)

type notificationRequest struct {
	Channel    string `json:"channel"`
	Recipient  string `json:"recipient"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// SendNotification handles POST /v1/notifications. Delivery is simulated.
func (h *Handler) SendNotification(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	var req notificationRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	msg := notify.Message{
		Channel:   notify.Channel(req.Channel),
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	}
	if req.EmployeeID != "" {
		employeeID, err := uuid.Parse(req.EmployeeID)
		if err != nil {
			h.writeBadRequest(w, "invalid employee id")
			return
		}
		msg.EmployeeID = employeeID
	}
	receipt, err := h.notifier.Send(r.Context(), companyID, msg)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusAccepted, receipt)
}
