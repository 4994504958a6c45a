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

// EquipmentRepository defines the storage interface for Equipment issuances.
type EquipmentRepository interface {
	EmployeeLister
	CreateEquipment(ctx context.Context, equipment *models.Equipment) error
	GetEquipment(ctx context.Context, companyID, id uuid.UUID) (*models.Equipment, error)
	UpdateEquipment(ctx context.Context, companyID uuid.UUID, equipment *models.Equipment) error
	DeleteEquipment(ctx context.Context, companyID, id uuid.UUID) error
	ListEquipment(ctx context.Context, companyID uuid.UUID) ([]models.Equipment, error)
	ListEquipmentByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Equipment, error)
}

// EquipmentService manages protective-equipment issuance records.
type EquipmentService struct {
	repo     EquipmentRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewEquipmentService(repo EquipmentRepository, producer EventProducer, logger *zap.Logger) *EquipmentService {
	return &EquipmentService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("equipment_service"),
	}
}

// Save inserts or updates an issuance depending on whether it carries an id.
// Quantity defaults to a single unit when omitted.
func (s *EquipmentService) Save(ctx context.Context, companyID uuid.UUID, equipment *models.Equipment) (*models.Equipment, error) {
	if equipment.EmployeeID == uuid.Nil {
		return nil, fmt.Errorf("%w: employee required", e.ErrInvalidInput)
	}
	if equipment.Name == "" {
		return nil, fmt.Errorf("%w: equipment name required", e.ErrInvalidInput)
	}
	if equipment.DeliveryDate.IsZero() {
		return nil, fmt.Errorf("%w: delivery date required", e.ErrInvalidInput)
	}
	if equipment.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must not be negative", e.ErrInvalidInput)
	}
	if equipment.Quantity == 0 {
		equipment.Quantity = 1
	}

	if equipment.ID == uuid.Nil {
		equipment.ID = uuid.New()
		equipment.CompanyID = companyID
		if err := s.repo.CreateEquipment(ctx, equipment); err != nil {
			return nil, fmt.Errorf("failed to create equipment issuance: %w", err)
		}
		go func() {
			s.producer.Produce(events.EquipmentSaved, equipment.ID.String(), equipment)
		}()
		return equipment, nil
	}

	if err := s.repo.UpdateEquipment(ctx, companyID, equipment); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update equipment issuance: %w", err)
	}
	updated, err := s.repo.GetEquipment(ctx, companyID, equipment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload equipment issuance: %w", err)
	}
	go func() {
		s.producer.Produce(events.EquipmentSaved, updated.ID.String(), updated)
	}()
	return updated, nil
}

func (s *EquipmentService) Get(ctx context.Context, companyID, id uuid.UUID) (*models.Equipment, error) {
	equipment, err := s.repo.GetEquipment(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get equipment issuance: %w", err)
	}
	return equipment, nil
}

func (s *EquipmentService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if err := s.repo.DeleteEquipment(ctx, companyID, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete equipment issuance: %w", err)
	}
	go func() {
		s.producer.Produce(events.EquipmentDeleted, id.String(), nil)
	}()
	return nil
}

func (s *EquipmentService) List(ctx context.Context, companyID uuid.UUID) ([]models.Equipment, error) {
	issuances, err := s.repo.ListEquipment(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment issuances: %w", err)
	}
	names, err := employeeNames(ctx, s.repo, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	for i := range issuances {
		issuances[i].EmployeeName = nameOrFallback(names, issuances[i].EmployeeID)
	}
	return issuances, nil
}

func (s *EquipmentService) ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Equipment, error) {
	issuances, err := s.repo.ListEquipmentByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment issuances: %w", err)
	}
	return issuances, nil
}
