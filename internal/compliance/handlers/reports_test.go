package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rbarros/vigia/internal/compliance/controller"
	"github.com/rbarros/vigia/internal/compliance/expiry"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
)

func TestExpiringFeedHandler(t *testing.T) {
	item := controller.ExpiringItem{
		Kind:          controller.ReportCertificates,
		ID:            uuid.New(),
		EmployeeID:    uuid.New(),
		EmployeeName:  "Ana",
		Label:         "Medical certificate (periodic)",
		ExpiryDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		DaysRemaining: 14,
	}
	m := &mocks{
		reports: mockReportController{
			expiringFeedFunc: func(_ context.Context, _ uuid.UUID) ([]controller.ExpiringItem, error) {
				return []controller.ExpiringItem{item}, nil
			},
		},
	}
	router, _, token := newTestServer(t, m)
	rec := doRequest(t, router, http.MethodGet, "/v1/reports/expiring", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp []controller.ExpiringItem
	decodeResponse(t, rec, &resp)
	if len(resp) != 1 || resp[0].Label != item.Label {
		t.Errorf("unexpected feed: %+v", resp)
	}
}

func TestExpiringFeedHandler_EmptyIsArray(t *testing.T) {
	m := &mocks{
		reports: mockReportController{
			expiringFeedFunc: func(_ context.Context, _ uuid.UUID) ([]controller.ExpiringItem, error) {
				return nil, nil
			},
		},
	}
	router, _, token := newTestServer(t, m)
	rec := doRequest(t, router, http.MethodGet, "/v1/reports/expiring", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}

func TestReportHandler(t *testing.T) {
	t.Run("ForwardsFilter", func(t *testing.T) {
		employeeID := uuid.New()
		var gotKind controller.ReportKind
		var gotFilter controller.ReportFilter
		m := &mocks{
			reports: mockReportController{
				reportFunc: func(_ context.Context, _ uuid.UUID, kind controller.ReportKind, filter controller.ReportFilter) ([]controller.ReportRow, error) {
					gotKind = kind
					gotFilter = filter
					return nil, nil
				},
			},
		}
		router, _, token := newTestServer(t, m)
		path := "/v1/reports/trainings?status=expiring_soon&employee_id=" + employeeID.String() + "&from=2026-01-01&to=2026-12-31"
		rec := doRequest(t, router, http.MethodGet, path, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotKind != controller.ReportTrainings {
			t.Errorf("expected kind trainings, got %q", gotKind)
		}
		if gotFilter.Status != expiry.StatusExpiring {
			t.Errorf("expected status filter expiring, got %q", gotFilter.Status)
		}
		if gotFilter.EmployeeID != employeeID {
			t.Errorf("expected employee filter %s, got %s", employeeID, gotFilter.EmployeeID)
		}
		if gotFilter.From.Format("2006-01-02") != "2026-01-01" || gotFilter.To.Format("2006-01-02") != "2026-12-31" {
			t.Errorf("unexpected date range: %v .. %v", gotFilter.From, gotFilter.To)
		}
	})

	t.Run("UnknownKind", func(t *testing.T) {
		router, _, token := newTestServer(t, &mocks{})
		rec := doRequest(t, router, http.MethodGet, "/v1/reports/vacations", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown kind, got %d", rec.Code)
		}
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		router, _, token := newTestServer(t, &mocks{})
		rec := doRequest(t, router, http.MethodGet, "/v1/reports/certificates?status=stale", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown status, got %d", rec.Code)
		}
	})
}

func TestExportReportHandler(t *testing.T) {
	days := 200
	row := controller.ReportRow{
		Kind: controller.ReportCertificates,
		Certificate: &models.Certificate{
			ID:           uuid.New(),
			EmployeeID:   uuid.New(),
			EmployeeName: "Ana",
			Category:     models.CategoryPeriodic,
			IssueDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			ExpiryDate:   time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC),
			Physician:    "Dr. Lima",
			Status:       models.CertificateValid,
		},
		Status:        expiry.StatusValid,
		DaysRemaining: &days,
	}
	m := &mocks{
		reports: mockReportController{
			reportFunc: func(_ context.Context, _ uuid.UUID, _ controller.ReportKind, _ controller.ReportFilter) ([]controller.ReportRow, error) {
				return []controller.ReportRow{row}, nil
			},
		},
	}
	router, _, token := newTestServer(t, m)
	rec := doRequest(t, router, http.MethodGet, "/v1/reports/certificates/export", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "report_certificates.csv") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	body := rec.Body.Bytes()
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("expected UTF-8 BOM prefix")
	}
	if !bytes.Contains(body, []byte(`"Ana"`)) || !bytes.Contains(body, []byte(`"15/01/2027"`)) {
		t.Errorf("expected quoted cells in CSV body, got %q", body)
	}
}

func TestStatisticsHandler(t *testing.T) {
	m := &mocks{
		reports: mockReportController{
			statisticsFunc: func(_ context.Context, _ uuid.UUID) (*controller.Statistics, error) {
				return &controller.Statistics{ActiveEmployees: 3, TotalCertificates: 5, ExpiringCertificates: 2}, nil
			},
		},
	}
	router, _, token := newTestServer(t, m)
	rec := doRequest(t, router, http.MethodGet, "/v1/reports/statistics", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp controller.Statistics
	decodeResponse(t, rec, &resp)
	if resp.ActiveEmployees != 3 || resp.TotalCertificates != 5 || resp.ExpiringCertificates != 2 {
		t.Errorf("unexpected statistics: %+v", resp)
	}
}
