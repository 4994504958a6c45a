package db

import (
	"context"
	"errors"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateTraining(ctx context.Context, training *models.Training) error {
	return r.db.WithContext(ctx).Create(training).Error
}

func (r *Repository) GetTraining(ctx context.Context, companyID, id uuid.UUID) (*models.Training, error) {
	var training models.Training
	result := r.db.WithContext(ctx).
		First(&training, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &training, nil
}

func (r *Repository) UpdateTraining(ctx context.Context, companyID uuid.UUID, training *models.Training) error {
	result := r.db.WithContext(ctx).Model(&models.Training{}).
		Where("id = ? AND company_id = ?", training.ID, companyID).
		Updates(map[string]interface{}{
			"regulation":      training.Regulation,
			"description":     training.Description,
			"completion_date": training.CompletionDate,
			"expiry_date":     training.ExpiryDate,
			"institution":     training.Institution,
			"hours":           training.Hours,
			"notes":           training.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTraining(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Training{}, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) ListTrainings(ctx context.Context, companyID uuid.UUID) ([]models.Training, error) {
	var trainings []models.Training
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("completion_date DESC").
		Find(&trainings)
	return trainings, result.Error
}

func (r *Repository) ListTrainingsByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Training, error) {
	var trainings []models.Training
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("completion_date DESC").
		Find(&trainings)
	return trainings, result.Error
}
