// Package billing handles subscription checkout and confirmation against a
// payment provider. The bundled provider is simulated; the Provider interface
// is the seam for a real gateway.
package billing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/events"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/rbarros/vigia/internal/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const providerMaxRetries = 3

// Plan is one subscription offering.
type Plan struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PriceCents  int      `json:"price_cents"`
	Currency    string   `json:"currency"`
	EmployeeCap int      `json:"employee_cap"`
	Features    []string `json:"features"`
}

// Plans is the subscription catalog, cheapest first.
var Plans = []Plan{
	{
		ID:          models.PlanBasic,
		Name:        "Basic",
		PriceCents:  4990,
		Currency:    "BRL",
		EmployeeCap: 50,
		Features:    []string{"employees", "certificates", "trainings", "equipment", "reports"},
	},
	{
		ID:          models.PlanPremium,
		Name:        "Premium",
		PriceCents:  9990,
		Currency:    "BRL",
		EmployeeCap: 0,
		Features:    []string{"employees", "certificates", "trainings", "equipment", "reports", "notifications", "csv_export"},
	},
}

// PlanByID looks up a plan in the catalog.
func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Session is a checkout session created at the provider.
type Session struct {
	ID             string
	URL            string
	PlanID         string
	CompanyID      uuid.UUID
	CustomerID     string
	SubscriptionID string
	Paid           bool
}

// ErrSessionNotFound is returned by VerifySession for unknown session ids.
var ErrSessionNotFound = fmt.Errorf("%w: checkout session", e.ErrNotFound)

// Provider is the payment gateway seam.
type Provider interface {
	CreateSession(ctx context.Context, companyID uuid.UUID, planID string) (*Session, error)
	VerifySession(ctx context.Context, sessionID string) (*Session, error)
}

// SimulatedProvider keeps checkout sessions in memory and treats every
// session as paid on verification.
type SimulatedProvider struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSimulatedProvider() *SimulatedProvider {
	return &SimulatedProvider{sessions: make(map[string]*Session)}
}

func (p *SimulatedProvider) CreateSession(_ context.Context, companyID uuid.UUID, planID string) (*Session, error) {
	session := &Session{
		ID:             "sess_" + uuid.NewString(),
		PlanID:         planID,
		CompanyID:      companyID,
		CustomerID:     "cus_" + uuid.NewString(),
		SubscriptionID: "sub_" + uuid.NewString(),
	}
	session.URL = "https://checkout.simulated.local/" + session.ID
	p.mu.Lock()
	p.sessions[session.ID] = session
	p.mu.Unlock()
	return session, nil
}

func (p *SimulatedProvider) VerifySession(_ context.Context, sessionID string) (*Session, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	session, ok := p.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	session.Paid = true
	return session, nil
}

// CompanyStore is the slice of the repository billing needs.
type CompanyStore interface {
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, update *models.CompanyUpdate) error
}

type eventProducer interface {
	Produce(eventType events.EventType, key string, payload interface{})
}

// Service drives checkout and applies confirmed payments to the tenant.
type Service struct {
	repo     CompanyStore
	provider Provider
	producer eventProducer
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo CompanyStore, provider Provider, producer eventProducer, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		producer: producer,
		logger:   logger.Named("billing_service"),
		now:      time.Now,
	}
}

// Checkout opens a provider session for the given plan.
func (s *Service) Checkout(ctx context.Context, companyID uuid.UUID, planID string) (*Session, error) {
	if _, ok := PlanByID(planID); !ok {
		return nil, fmt.Errorf("%w: unknown plan %q", e.ErrInvalidInput, planID)
	}
	if _, err := s.repo.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	var session *Session
	operation := func() error {
		var err error
		session, err = s.provider.CreateSession(ctx, companyID, planID)
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), providerMaxRetries), ctx)); err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session, nil
}

// Confirm verifies a session at the provider and, if paid, moves the tenant
// onto the purchased plan with the next charge due in one month.
func (s *Service) Confirm(ctx context.Context, companyID uuid.UUID, sessionID string) (*models.Company, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id required", e.ErrInvalidInput)
	}

	var session *Session
	operation := func() error {
		var err error
		session, err = s.provider.VerifySession(ctx, sessionID)
		if errors.Is(err, e.ErrNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), providerMaxRetries), ctx)); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify checkout session: %w", err)
	}
	if session.CompanyID != companyID {
		return nil, fmt.Errorf("%w: checkout session", e.ErrNotFound)
	}

	status := models.PaymentPending
	if session.Paid {
		status = models.PaymentPaid
	}
	update := &models.CompanyUpdate{
		Plan:           utils.Ptr(session.PlanID),
		PaymentStatus:  &status,
		NextDueDate:    utils.Ptr(s.now().AddDate(0, 1, 0)),
		CustomerID:     utils.Ptr(session.CustomerID),
		SubscriptionID: utils.Ptr(session.SubscriptionID),
	}
	if err := s.repo.UpdateCompany(ctx, companyID, update); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}
	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload company: %w", err)
	}
	go func() {
		s.producer.Produce(events.SubscriptionUpdated, companyID.String(), company)
	}()
	return company, nil
}
