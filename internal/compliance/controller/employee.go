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

// EmployeeRepository defines the storage interface for Employee objects.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) error
	GetEmployee(ctx context.Context, companyID, id uuid.UUID) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, companyID uuid.UUID, update *models.EmployeeUpdate) error
	DeleteEmployee(ctx context.Context, companyID, id uuid.UUID) error
	ListEmployees(ctx context.Context, companyID uuid.UUID) ([]models.Employee, error)
	EmployeeExistsByRegistration(ctx context.Context, companyID uuid.UUID, registration string) (bool, error)
}

// EmployeeService provides tenant-scoped employee management.
type EmployeeService struct {
	repo     EmployeeRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewEmployeeService(repo EmployeeRepository, producer EventProducer, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("employee_service"),
	}
}

// Create validates and inserts a new employee. Registration numbers are
// unique within a tenant.
func (s *EmployeeService) Create(ctx context.Context, companyID uuid.UUID, employee *models.Employee) (*models.Employee, error) {
	if employee.Name == "" {
		return nil, fmt.Errorf("%w: name required", e.ErrInvalidInput)
	}
	if employee.Registration == "" {
		return nil, fmt.Errorf("%w: registration required", e.ErrInvalidInput)
	}
	if employee.Status == "" {
		employee.Status = models.EmployeeActive
	}

	exists, err := s.repo.EmployeeExistsByRegistration(ctx, companyID, employee.Registration)
	if err != nil {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return nil, e.ErrDuplicateRegistration
	}

	employee.ID = uuid.New()
	employee.CompanyID = companyID
	if err := s.repo.CreateEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	go func() {
		s.producer.Produce(events.EmployeeCreated, employee.ID.String(), employee)
	}()
	return employee, nil
}

func (s *EmployeeService) Get(ctx context.Context, companyID, id uuid.UUID) (*models.Employee, error) {
	employee, err := s.repo.GetEmployee(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, companyID uuid.UUID, update *models.EmployeeUpdate) (*models.Employee, error) {
	if update.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid employee ID", e.ErrInvalidInput)
	}

	if err := s.repo.UpdateEmployee(ctx, companyID, update); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.repo.GetEmployee(ctx, companyID, update.ID)
	if err != nil {
		s.logger.Error("Failed to reload employee after update",
			zap.Error(err),
			zap.String("employee_id", update.ID.String()),
		)
		return nil, err
	}
	go func() {
		s.producer.Produce(events.EmployeeUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// Delete removes the employee unconditionally. Certificates, trainings and
// equipment belonging to the employee stay behind; their views fall back to
// a placeholder name.
func (s *EmployeeService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	employee, err := s.repo.GetEmployee(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to get employee for deletion: %w", err)
	}

	if err := s.repo.DeleteEmployee(ctx, companyID, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	go func() {
		s.producer.Produce(events.EmployeeDeleted, employee.ID.String(), employee)
	}()
	return nil
}

func (s *EmployeeService) List(ctx context.Context, companyID uuid.UUID) ([]models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
