package controller

import (
	"context"
	"errors"
	"fmt"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/events"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyRepository defines the storage interface for Company tenants.
type CompanyRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, update *models.CompanyUpdate) error
	ListCompanies(ctx context.Context) ([]models.Company, error)
}

// CompanyService manages tenant accounts. Regular users only ever touch
// their own tenant; listing and activation toggles are admin operations.
type CompanyService struct {
	repo     CompanyRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewCompanyService(repo CompanyRepository, producer EventProducer, logger *zap.Logger) *CompanyService {
	return &CompanyService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("company_service"),
	}
}

func (s *CompanyService) Create(ctx context.Context, company *models.Company) (*models.Company, error) {
	if company.Name == "" {
		return nil, fmt.Errorf("%w: company name required", e.ErrInvalidInput)
	}
	company.ID = uuid.New()
	if company.Plan == "" {
		company.Plan = models.PlanBasic
	}
	if company.PaymentStatus == "" {
		company.PaymentStatus = models.PaymentPending
	}
	company.Active = true
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, update *models.CompanyUpdate) (*models.Company, error) {
	if update.Name != nil && *update.Name == "" {
		return nil, fmt.Errorf("%w: company name must not be empty", e.ErrInvalidInput)
	}
	if err := s.repo.UpdateCompany(ctx, id, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload company: %w", err)
	}
	return company, nil
}

func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// SetActive toggles whether a tenant may sign in. Data is retained either way.
func (s *CompanyService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Company, error) {
	update := &models.CompanyUpdate{Active: &active}
	if err := s.repo.UpdateCompany(ctx, id, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload company: %w", err)
	}
	go func() {
		s.producer.Produce(events.CompanyStatusChanged, id.String(), company)
	}()
	return company, nil
}
