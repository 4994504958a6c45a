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

// TrainingRepository defines the storage interface for Training records.
type TrainingRepository interface {
	EmployeeLister
	CreateTraining(ctx context.Context, training *models.Training) error
	GetTraining(ctx context.Context, companyID, id uuid.UUID) (*models.Training, error)
	UpdateTraining(ctx context.Context, companyID uuid.UUID, training *models.Training) error
	DeleteTraining(ctx context.Context, companyID, id uuid.UUID) error
	ListTrainings(ctx context.Context, companyID uuid.UUID) ([]models.Training, error)
	ListTrainingsByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Training, error)
}

// TrainingService manages safety-training completion records. Trainings
// have no active/history duality; an employee may hold several at once.
type TrainingService struct {
	repo     TrainingRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewTrainingService(repo TrainingRepository, producer EventProducer, logger *zap.Logger) *TrainingService {
	return &TrainingService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("training_service"),
	}
}

// Save inserts or updates a training record depending on whether it carries
// an id. The expiry date is user-entered and optional.
func (s *TrainingService) Save(ctx context.Context, companyID uuid.UUID, training *models.Training) (*models.Training, error) {
	if training.EmployeeID == uuid.Nil {
		return nil, fmt.Errorf("%w: employee required", e.ErrInvalidInput)
	}
	if !models.ValidRegulation(training.Regulation) {
		return nil, fmt.Errorf("%w: unknown regulation %q", e.ErrInvalidInput, training.Regulation)
	}
	if training.CompletionDate.IsZero() {
		return nil, fmt.Errorf("%w: completion date required", e.ErrInvalidInput)
	}

	if training.ID == uuid.Nil {
		training.ID = uuid.New()
		training.CompanyID = companyID
		if err := s.repo.CreateTraining(ctx, training); err != nil {
			return nil, fmt.Errorf("failed to create training: %w", err)
		}
		go func() {
			s.producer.Produce(events.TrainingSaved, training.ID.String(), training)
		}()
		return training, nil
	}

	if err := s.repo.UpdateTraining(ctx, companyID, training); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update training: %w", err)
	}
	updated, err := s.repo.GetTraining(ctx, companyID, training.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload training: %w", err)
	}
	go func() {
		s.producer.Produce(events.TrainingSaved, updated.ID.String(), updated)
	}()
	return updated, nil
}

func (s *TrainingService) Get(ctx context.Context, companyID, id uuid.UUID) (*models.Training, error) {
	training, err := s.repo.GetTraining(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get training: %w", err)
	}
	return training, nil
}

func (s *TrainingService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	if err := s.repo.DeleteTraining(ctx, companyID, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete training: %w", err)
	}
	go func() {
		s.producer.Produce(events.TrainingDeleted, id.String(), nil)
	}()
	return nil
}

func (s *TrainingService) List(ctx context.Context, companyID uuid.UUID) ([]models.Training, error) {
	trainings, err := s.repo.ListTrainings(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	names, err := employeeNames(ctx, s.repo, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	for i := range trainings {
		trainings[i].EmployeeName = nameOrFallback(names, trainings[i].EmployeeID)
	}
	return trainings, nil
}

func (s *TrainingService) ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Training, error) {
	trainings, err := s.repo.ListTrainingsByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	return trainings, nil
}
