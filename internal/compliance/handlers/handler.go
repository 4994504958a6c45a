// Package handlers exposes the compliance services over REST, translating
// between JSON payloads and domain models and mapping service errors to
// HTTP status codes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rbarros/vigia/internal/compliance/auth"
	"github.com/rbarros/vigia/internal/compliance/billing"
	"github.com/rbarros/vigia/internal/compliance/controller"
	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/rbarros/vigia/internal/compliance/notify"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EmployeeController is the business logic surface for employee endpoints.
type EmployeeController interface {
	Create(ctx context.Context, companyID uuid.UUID, employee *models.Employee) (*models.Employee, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*models.Employee, error)
	Update(ctx context.Context, companyID uuid.UUID, update *models.EmployeeUpdate) (*models.Employee, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID) ([]models.Employee, error)
}

// CertificateController is the business logic surface for certificate endpoints.
type CertificateController interface {
	Save(ctx context.Context, companyID uuid.UUID, certificate *models.Certificate) (*models.Certificate, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	ListActive(ctx context.Context, companyID uuid.UUID) ([]models.Certificate, error)
	ListHistory(ctx context.Context, companyID uuid.UUID) ([]models.ArchivedCertificate, error)
	ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Certificate, []models.ArchivedCertificate, error)
}

// TrainingController is the business logic surface for training endpoints.
type TrainingController interface {
	Save(ctx context.Context, companyID uuid.UUID, training *models.Training) (*models.Training, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*models.Training, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID) ([]models.Training, error)
	ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Training, error)
}

// EquipmentController is the business logic surface for equipment endpoints.
type EquipmentController interface {
	Save(ctx context.Context, companyID uuid.UUID, equipment *models.Equipment) (*models.Equipment, error)
	Get(ctx context.Context, companyID, id uuid.UUID) (*models.Equipment, error)
	Delete(ctx context.Context, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID) ([]models.Equipment, error)
	ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Equipment, error)
}

// CompanyController is the business logic surface for tenant endpoints.
type CompanyController interface {
	Create(ctx context.Context, company *models.Company) (*models.Company, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Company, error)
	Update(ctx context.Context, id uuid.UUID, update *models.CompanyUpdate) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Company, error)
}

// ReportController is the business logic surface for report endpoints.
type ReportController interface {
	ExpiringFeed(ctx context.Context, companyID uuid.UUID) ([]controller.ExpiringItem, error)
	Report(ctx context.Context, companyID uuid.UUID, kind controller.ReportKind, filter controller.ReportFilter) ([]controller.ReportRow, error)
	Statistics(ctx context.Context, companyID uuid.UUID) (*controller.Statistics, error)
}

// BillingController is the business logic surface for billing endpoints.
type BillingController interface {
	Checkout(ctx context.Context, companyID uuid.UUID, planID string) (*billing.Session, error)
	Confirm(ctx context.Context, companyID uuid.UUID, sessionID string) (*models.Company, error)
}

// NotificationSender delivers expiry reminders.
type NotificationSender interface {
	Send(ctx context.Context, companyID uuid.UUID, msg notify.Message) (*notify.Receipt, error)
}

// Handler bundles the service dependencies of every route.
type Handler struct {
	employees    EmployeeController
	certificates CertificateController
	trainings    TrainingController
	equipment    EquipmentController
	companies    CompanyController
	reports      ReportController
	billing      BillingController
	notifier     NotificationSender
	logger       *zap.Logger
}

// NewHandler constructs a Handler with the given services and logger.
func NewHandler(
	employees EmployeeController,
	certificates CertificateController,
	trainings TrainingController,
	equipment EquipmentController,
	companies CompanyController,
	reports ReportController,
	billingSvc BillingController,
	notifier NotificationSender,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		employees:    employees,
		certificates: certificates,
		trainings:    trainings,
		equipment:    equipment,
		companies:    companies,
		reports:      reports,
		billing:      billingSvc,
		notifier:     notifier,
		logger:       logger.Named("http_handler"),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeServiceError maps domain or repository errors to HTTP status codes.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, e.ErrDuplicateRegistration):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, e.ErrInvalidInput):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (h *Handler) writeBadRequest(w http.ResponseWriter, msg string) {
	h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// tenantID pulls the authenticated company out of the request context. The
// auth middleware guarantees it is set on every protected route.
func (h *Handler) tenantID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	companyID, ok := auth.CompanyIDFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing tenant"})
		return uuid.Nil, false
	}
	return companyID, true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id")
	}
	return id, nil
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body")
	}
	return nil
}
