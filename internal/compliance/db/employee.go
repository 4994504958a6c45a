package db

import (
	"context"
	"errors"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	result := r.db.WithContext(ctx).Create(employee)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return e.ErrDuplicateRegistration
		}
		return result.Error
	}
	return nil
}

func (r *Repository) GetEmployee(ctx context.Context, companyID, id uuid.UUID) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.WithContext(ctx).
		First(&employee, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &employee, nil
}

func (r *Repository) UpdateEmployee(ctx context.Context, companyID uuid.UUID, update *models.EmployeeUpdate) error {
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("id = ? AND company_id = ?", update.ID, companyID).
		Updates(update)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// DeleteEmployee removes the employee row only. Dependent certificates,
// trainings and equipment are left in place, matching the unconditional
// delete of the original system.
func (r *Repository) DeleteEmployee(ctx context.Context, companyID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.Employee{}, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) ListEmployees(ctx context.Context, companyID uuid.UUID) ([]models.Employee, error) {
	var employees []models.Employee
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&employees)
	return employees, result.Error
}

func (r *Repository) EmployeeExistsByRegistration(ctx context.Context, companyID uuid.UUID, registration string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.Employee{}).
		Where("company_id = ? AND registration = ?", companyID, registration).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}
