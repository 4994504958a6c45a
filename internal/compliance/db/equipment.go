package db

import (
	"context"
	"errors"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateEquipment(ctx context.Context, equipment *models.Equipment) error {
	return r.db.WithContext(ctx).Create(equipment).Error
}

func (r *Repository) GetEquipment(ctx context.Context, companyID, id uuid.UUID) (*models.Equipment, error) {
	var equipment models.Equipment
	result := r.db.WithContext(ctx).
		First(&equipment, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &equipment, nil
}

func (r *Repository) UpdateEquipment(ctx context.Context, companyID uuid.UUID, equipment *models.Equipment) error {
	result := r.db.WithContext(ctx).Model(&models.Equipment{}).
		Where("id = ? AND company_id = ?", equipment.ID, companyID).
		Updates(map[string]interface{}{
			"name":            equipment.Name,
			"approval_number": equipment.ApprovalNumber,
			"delivery_date":   equipment.DeliveryDate,
			"expiry_date":     equipment.ExpiryDate,
			"quantity":        equipment.Quantity,
			"notes":           equipment.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteEquipment(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Equipment{}, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) ListEquipment(ctx context.Context, companyID uuid.UUID) ([]models.Equipment, error) {
	var equipment []models.Equipment
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("delivery_date DESC").
		Find(&equipment)
	return equipment, result.Error
}

func (r *Repository) ListEquipmentByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Equipment, error) {
	var equipment []models.Equipment
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("delivery_date DESC").
		Find(&equipment)
	return equipment, result.Error
}
