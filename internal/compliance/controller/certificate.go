package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/rbarros/vigia/internal/compliance/db"
	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/events"
	"github.com/rbarros/vigia/internal/compliance/expiry"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// saveMaxRetries bounds the retry of the replacement transaction on
// transient storage errors.
const saveMaxRetries = 3

// CertificateRepository is the storage interface the lifecycle manager
// drives. WithTransaction hands the callback a repository bound to a single
// transaction so the archive/delete/insert sequence commits atomically.
type CertificateRepository interface {
	EmployeeLister
	GetCertificate(ctx context.Context, companyID, id uuid.UUID) (*models.Certificate, error)
	GetArchivedCertificate(ctx context.Context, companyID, id uuid.UUID) (*models.ArchivedCertificate, error)
	UpdateCertificate(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) error
	UpdateArchivedCertificate(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) error
	DeleteCertificate(ctx context.Context, companyID, id uuid.UUID) (bool, error)
	DeleteArchivedCertificate(ctx context.Context, companyID, id uuid.UUID) (bool, error)
	ListCertificates(ctx context.Context, companyID uuid.UUID) ([]models.Certificate, error)
	ListArchivedCertificates(ctx context.Context, companyID uuid.UUID) ([]models.ArchivedCertificate, error)
	ListCertificatesByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Certificate, error)
	ListArchivedCertificatesByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.ArchivedCertificate, error)
	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// CertificateService maintains the at-most-one-active-certificate-per-
// employee invariant across the active and history sets.
type CertificateService struct {
	repo     CertificateRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewCertificateService(repo CertificateRepository, producer EventProducer, logger *zap.Logger) *CertificateService {
	return &CertificateService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("certificate_service"),
	}
}

// Save persists a certificate. A record carrying an id is updated in place,
// first in the active set and then, falling through, in the history set;
// updating never archives and never restores. A record without an id is a
// new certificate: any currently active certificate for the employee is
// archived as superseded before the new one is inserted, inside one
// transaction. The expiry date is always re-derived from the issue date.
func (s *CertificateService) Save(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) (*models.Certificate, error) {
	if cert.EmployeeID == uuid.Nil {
		return nil, fmt.Errorf("%w: employee required", e.ErrInvalidInput)
	}
	if cert.Category == "" {
		return nil, fmt.Errorf("%w: category required", e.ErrInvalidInput)
	}
	if cert.IssueDate.IsZero() {
		return nil, fmt.Errorf("%w: issue date required", e.ErrInvalidInput)
	}
	cert.ExpiryDate = expiry.OneYearLater(cert.IssueDate)

	if cert.ID != uuid.Nil {
		return s.update(ctx, companyID, cert)
	}
	return s.create(ctx, companyID, cert)
}

// update edits an existing record wherever it lives: active set first,
// history set second. Only after both misses is NotFound surfaced.
func (s *CertificateService) update(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) (*models.Certificate, error) {
	err := s.repo.UpdateCertificate(ctx, companyID, cert)
	if err == nil {
		updated, err := s.repo.GetCertificate(ctx, companyID, cert.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload certificate: %w", err)
		}
		go func() {
			s.producer.Produce(events.CertificateUpdated, updated.ID.String(), updated)
		}()
		return updated, nil
	}
	if !errors.Is(err, e.ErrNotFound) {
		return nil, fmt.Errorf("failed to update certificate: %w", err)
	}

	err = s.repo.UpdateArchivedCertificate(ctx, companyID, cert)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update archived certificate: %w", err)
	}
	archived, err := s.repo.GetArchivedCertificate(ctx, companyID, cert.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload archived certificate: %w", err)
	}
	updated := archivedToCertificate(archived)
	go func() {
		s.producer.Produce(events.CertificateUpdated, updated.ID.String(), updated)
	}()
	return updated, nil
}

// create inserts a new active certificate, archiving any predecessor for the
// same employee. Archive, delete and insert run in one transaction; the
// transaction is retried a bounded number of times on transient storage
// errors.
func (s *CertificateService) create(ctx context.Context, companyID uuid.UUID, cert *models.Certificate) (*models.Certificate, error) {
	var superseded *models.ArchivedCertificate

	operation := func() error {
		superseded = nil
		return s.repo.WithTransaction(ctx, func(tx *db.Repository) error {
			prev, err := tx.GetActiveCertificateByEmployee(ctx, companyID, cert.EmployeeID)
			if err != nil && !errors.Is(err, e.ErrNotFound) {
				return err
			}

			if prev != nil {
				// The archive row keeps the original creation timestamp and
				// remembers the id it had while active. The projection-only
				// employee name never travels with it.
				archived := &models.ArchivedCertificate{
					ID:         uuid.New(),
					CompanyID:  prev.CompanyID,
					OriginalID: prev.ID,
					EmployeeID: prev.EmployeeID,
					Category:   prev.Category,
					IssueDate:  prev.IssueDate,
					ExpiryDate: prev.ExpiryDate,
					Physician:  prev.Physician,
					License:    prev.License,
					Notes:      prev.Notes,
					Status:     models.CertificateSuperseded,
					CreatedAt:  prev.CreatedAt,
				}
				if err := tx.CreateArchivedCertificate(ctx, archived); err != nil {
					return err
				}
				if _, err := tx.DeleteCertificate(ctx, companyID, prev.ID); err != nil {
					return err
				}
				superseded = archived
			}

			cert.ID = uuid.New()
			cert.CompanyID = companyID
			cert.Status = models.CertificateValid
			return tx.CreateCertificate(ctx, cert)
		})
	}

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), saveMaxRetries), ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to save certificate: %w", err)
	}

	go func() {
		if superseded != nil {
			s.producer.Produce(events.CertificateSuperseded, superseded.OriginalID.String(), superseded)
		}
		s.producer.Produce(events.CertificateCreated, cert.ID.String(), cert)
	}()
	return cert, nil
}

// Delete removes a certificate by id, trying the active set first and the
// history set second. A miss in both is success: deletes are idempotent.
func (s *CertificateService) Delete(ctx context.Context, companyID, id uuid.UUID) error {
	matched, err := s.repo.DeleteCertificate(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("failed to delete certificate: %w", err)
	}
	if !matched {
		matched, err = s.repo.DeleteArchivedCertificate(ctx, companyID, id)
		if err != nil {
			return fmt.Errorf("failed to delete archived certificate: %w", err)
		}
	}
	if matched {
		go func() {
			s.producer.Produce(events.CertificateDeleted, id.String(), nil)
		}()
	}
	return nil
}

// ListActive returns the active set with employee names projected on.
func (s *CertificateService) ListActive(ctx context.Context, companyID uuid.UUID) ([]models.Certificate, error) {
	certs, err := s.repo.ListCertificates(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	names, err := employeeNames(ctx, s.repo, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	for i := range certs {
		certs[i].EmployeeName = nameOrFallback(names, certs[i].EmployeeID)
	}
	return certs, nil
}

// ListHistory returns the archived set with employee names projected on.
func (s *CertificateService) ListHistory(ctx context.Context, companyID uuid.UUID) ([]models.ArchivedCertificate, error) {
	certs, err := s.repo.ListArchivedCertificates(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list archived certificates: %w", err)
	}
	names, err := employeeNames(ctx, s.repo, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	for i := range certs {
		certs[i].EmployeeName = nameOrFallback(names, certs[i].EmployeeID)
	}
	return certs, nil
}

// ListByEmployee returns both sets for one employee's detail view.
func (s *CertificateService) ListByEmployee(ctx context.Context, companyID, employeeID uuid.UUID) ([]models.Certificate, []models.ArchivedCertificate, error) {
	active, err := s.repo.ListCertificatesByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	history, err := s.repo.ListArchivedCertificatesByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list archived certificates: %w", err)
	}
	return active, history, nil
}

func archivedToCertificate(a *models.ArchivedCertificate) *models.Certificate {
	return &models.Certificate{
		ID:         a.ID,
		CompanyID:  a.CompanyID,
		EmployeeID: a.EmployeeID,
		Category:   a.Category,
		IssueDate:  a.IssueDate,
		ExpiryDate: a.ExpiryDate,
		Physician:  a.Physician,
		License:    a.License,
		Notes:      a.Notes,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
