package db

import (
	"context"
	"errors"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- Active set ---

func (r *Repository) CreateCertificate(ctx context.Context, cert *models.Certificate) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *Repository) GetCertificate(ctx context.Context, companyID, id uuid.UUID) (*models.Certificate, error) {
	var cert models.Certificate
	result := r.db.WithContext(ctx).
		First(&cert, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &cert, nil
}

// GetActiveCertificateByEmployee returns the single active certificate of an
// employee, or ErrNotFound when the employee has none yet.
func (r *Repository) GetActiveCertificateByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) (*models.Certificate, error) {
	var cert models.Certificate
	result := r.db.WithContext(ctx).
		First(&cert, "employee_id = ? AND company_id = ?", employeeID, companyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &cert, nil
}

// UpdateCertificate rewrites the mutable fields of an active certificate.
// The expiry date is expected to be re-derived by the caller.
func (r *Repository) UpdateCertificate(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) error {
	result := r.db.WithContext(ctx).Model(&models.Certificate{}).
		Where("id = ? AND company_id = ?", cert.ID, companyID).
		Updates(map[string]interface{}{
			"category":    cert.Category,
			"issue_date":  cert.IssueDate,
			"expiry_date": cert.ExpiryDate,
			"physician":   cert.Physician,
			"license":     cert.License,
			"notes":       cert.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

// DeleteCertificate removes an active certificate. The boolean reports
// whether a row matched; an unmatched id is not an error, the caller decides
// whether to fall through to the history set.
func (r *Repository) DeleteCertificate(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.Certificate{}, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListCertificates(ctx context.Context, companyID uuid.UUID) ([]models.Certificate, error) {
	var certs []models.Certificate
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("issue_date DESC").
		Find(&certs)
	return certs, result.Error
}

func (r *Repository) ListCertificatesByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Certificate, error) {
	var certs []models.Certificate
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("issue_date DESC").
		Find(&certs)
	return certs, result.Error
}

// --- History set ---

func (r *Repository) CreateArchivedCertificate(ctx context.Context, cert *models.ArchivedCertificate) error {
	return r.db.WithContext(ctx).Create(cert).Error
}

func (r *Repository) GetArchivedCertificate(ctx context.Context, companyID, id uuid.UUID) (*models.ArchivedCertificate, error) {
	var cert models.ArchivedCertificate
	result := r.db.WithContext(ctx).
		First(&cert, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, result.Error
	}
	return &cert, nil
}

// UpdateArchivedCertificate edits an archived certificate in place. Editing
// history never restores a record to the active set.
func (r *Repository) UpdateArchivedCertificate(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) error {
	result := r.db.WithContext(ctx).Model(&models.ArchivedCertificate{}).
		Where("id = ? AND company_id = ?", cert.ID, companyID).
		Updates(map[string]interface{}{
			"category":    cert.Category,
			"issue_date":  cert.IssueDate,
			"expiry_date": cert.ExpiryDate,
			"physician":   cert.Physician,
			"license":     cert.License,
			"notes":       cert.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return e.ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteArchivedCertificate(ctx context.Context, companyID, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.ArchivedCertificate{}, "id = ? AND company_id = ?", id, companyID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) ListArchivedCertificates(ctx context.Context, companyID uuid.UUID) ([]models.ArchivedCertificate, error) {
	var certs []models.ArchivedCertificate
	result := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("issue_date DESC").
		Find(&certs)
	return certs, result.Error
}

func (r *Repository) ListArchivedCertificatesByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.ArchivedCertificate, error) {
	var certs []models.ArchivedCertificate
	result := r.db.WithContext(ctx).
		Where("company_id = ? AND employee_id = ?", companyID, employeeID).
		Order("issue_date DESC").
		Find(&certs)
	return certs, result.Error
}
