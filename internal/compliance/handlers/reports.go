package handlers

import (
	"fmt"
	"net/http"

	"github.com/rbarros/vigia/internal/compliance/controller"
	"github.com/rbarros/vigia/internal/compliance/expiry"
	"github.com/rbarros/vigia/internal/compliance/export"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ExpiringFeed handles GET /v1/reports/expiring.
func (h *Handler) ExpiringFeed(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	feed, err := h.reports.ExpiringFeed(r.Context(), companyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if feed == nil {
		feed = []controller.ExpiringItem{}
	}
	h.writeJSON(w, http.StatusOK, feed)
}

// Statistics handles GET /v1/reports/statistics.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	stats, err := h.reports.Statistics(r.Context(), companyID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// Report handles GET /v1/reports/{kind}.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	kind, filter, err := reportQuery(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	rows, err := h.reports.Report(r.Context(), companyID, kind, filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []controller.ReportRow{}
	}
	h.writeJSON(w, http.StatusOK, rows)
}

// ExportReport handles GET /v1/reports/{kind}/export, streaming the filtered
// report as a CSV download.
func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.tenantID(w, r)
	if !ok {
		return
	}
	kind, filter, err := reportQuery(r)
	if err != nil {
		h.writeBadRequest(w, err.Error())
		return
	}
	rows, err := h.reports.Report(r.Context(), companyID, kind, filter)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	body, err := export.CSV(kind, rows)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(kind)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Error("Failed to write CSV response")
	}
}

func reportQuery(r *http.Request) (controller.ReportKind, controller.ReportFilter, error) {
	kind := controller.ReportKind(chi.URLParam(r, "kind"))
	if !controller.ValidReportKind(kind) {
		return "", controller.ReportFilter{}, fmt.Errorf("unknown report kind %q", kind)
	}

	var filter controller.ReportFilter
	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		s := expiry.Status(status)
		if s != expiry.StatusExpired && s != expiry.StatusExpiring && s != expiry.StatusValid {
			return "", controller.ReportFilter{}, fmt.Errorf("unknown status %q", status)
		}
		filter.Status = s
	}
	if raw := query.Get("employee_id"); raw != "" {
		employeeID, err := uuid.Parse(raw)
		if err != nil {
			return "", controller.ReportFilter{}, fmt.Errorf("invalid employee id")
		}
		filter.EmployeeID = employeeID
	}
	if raw := query.Get("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return "", controller.ReportFilter{}, err
		}
		filter.From = *from
	}
	if raw := query.Get("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return "", controller.ReportFilter{}, err
		}
		filter.To = *to
	}
	return kind, filter, nil
}
