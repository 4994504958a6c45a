package controller

import (
	"context"
	"fmt"
	"sort"
	"time"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/expiry"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportKind selects which record family a report covers.
type ReportKind string

const (
	ReportCertificates ReportKind = "certificates"
	ReportTrainings    ReportKind = "trainings"
	ReportEquipment    ReportKind = "equipment"
)

// ValidReportKind reports whether kind names a known record family.
func ValidReportKind(kind ReportKind) bool {
	switch kind {
	case ReportCertificates, ReportTrainings, ReportEquipment:
		return true
	}
	return false
}

// ReportFilter narrows a per-kind report. Zero values mean "no constraint".
// From and To bound the record's reference date inclusively.
type ReportFilter struct {
	Status     expiry.Status
	EmployeeID uuid.UUID
	From       time.Time
	To         time.Time
}

// ExpiringItem is one row of the cross-kind expiring feed.
type ExpiringItem struct {
	Kind          ReportKind `json:"kind"`
	ID            uuid.UUID  `json:"id"`
	EmployeeID    uuid.UUID  `json:"employee_id"`
	EmployeeName  string     `json:"employee_name"`
	Label         string     `json:"label"`
	ExpiryDate    time.Time  `json:"expiry_date"`
	DaysRemaining int        `json:"days_remaining"`
}

// ReportRow is one row of a per-kind report: the underlying record plus the
// computed expiry status.
type ReportRow struct {
	Kind          ReportKind          `json:"kind"`
	Certificate   *models.Certificate `json:"certificate,omitempty"`
	Training      *models.Training    `json:"training,omitempty"`
	Equipment     *models.Equipment   `json:"equipment,omitempty"`
	Status        expiry.Status       `json:"status"`
	DaysRemaining *int                `json:"days_remaining,omitempty"`
}

// Statistics is the dashboard summary for one tenant.
type Statistics struct {
	ActiveEmployees      int `json:"active_employees"`
	TotalCertificates    int `json:"total_certificates"`
	ExpiredCertificates  int `json:"expired_certificates"`
	ExpiringCertificates int `json:"expiring_certificates"`
	TotalTrainings       int `json:"total_trainings"`
	ExpiredTrainings     int `json:"expired_trainings"`
	ExpiringTrainings    int `json:"expiring_trainings"`
	TotalEquipment       int `json:"total_equipment"`
	ExpiredEquipment     int `json:"expired_equipment"`
	ExpiringEquipment    int `json:"expiring_equipment"`
}

// ReportRepository is the read surface reports are computed from.
type ReportRepository interface {
	EmployeeLister
	ListCertificates(ctx context.Context, companyID uuid.UUID) ([]models.Certificate, error)
	ListTrainings(ctx context.Context, companyID uuid.UUID) ([]models.Training, error)
	ListEquipment(ctx context.Context, companyID uuid.UUID) ([]models.Equipment, error)
}

// ReportService computes expiry feeds, filtered reports and dashboard
// statistics. It never writes. The clock is injectable for tests.
type ReportService struct {
	repo   ReportRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewReportService(repo ReportRepository, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:   repo,
		logger: logger.Named("report_service"),
		now:    time.Now,
	}
}

// ExpiringFeed returns every record of every kind whose expiry date falls
// strictly less than 60 days from today, already-expired records included,
// sorted soonest first.
func (s *ReportService) ExpiringFeed(ctx context.Context, companyID uuid.UUID) ([]ExpiringItem, error) {
	certificates, trainings, issuances, names, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	var feed []ExpiringItem
	for _, c := range certificates {
		d := c.ExpiryDate
		if days := expiry.DaysRemainingAt(&d, now); days != nil && *days < expiry.FeedWindowDays {
			feed = append(feed, ExpiringItem{
				Kind:          ReportCertificates,
				ID:            c.ID,
				EmployeeID:    c.EmployeeID,
				EmployeeName:  nameOrFallback(names, c.EmployeeID),
				Label:         fmt.Sprintf("Medical certificate (%s)", c.Category),
				ExpiryDate:    c.ExpiryDate,
				DaysRemaining: *days,
			})
		}
	}
	for _, t := range trainings {
		if days := expiry.DaysRemainingAt(t.ExpiryDate, now); days != nil && *days < expiry.FeedWindowDays {
			feed = append(feed, ExpiringItem{
				Kind:          ReportTrainings,
				ID:            t.ID,
				EmployeeID:    t.EmployeeID,
				EmployeeName:  nameOrFallback(names, t.EmployeeID),
				Label:         fmt.Sprintf("Training %s", t.Regulation),
				ExpiryDate:    *t.ExpiryDate,
				DaysRemaining: *days,
			})
		}
	}
	for _, q := range issuances {
		if days := expiry.DaysRemainingAt(q.ExpiryDate, now); days != nil && *days < expiry.FeedWindowDays {
			feed = append(feed, ExpiringItem{
				Kind:          ReportEquipment,
				ID:            q.ID,
				EmployeeID:    q.EmployeeID,
				EmployeeName:  nameOrFallback(names, q.EmployeeID),
				Label:         q.Name,
				ExpiryDate:    *q.ExpiryDate,
				DaysRemaining: *days,
			})
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].DaysRemaining < feed[j].DaysRemaining
	})
	return feed, nil
}

// Report returns the rows of one record family with computed status, after
// applying the filter.
func (s *ReportService) Report(ctx context.Context, companyID uuid.UUID, kind ReportKind, filter ReportFilter) ([]ReportRow, error) {
	if !ValidReportKind(kind) {
		return nil, fmt.Errorf("%w: unknown report kind %q", e.ErrInvalidInput, kind)
	}
	now := s.now()
	names, err := employeeNames(ctx, s.repo, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	var rows []ReportRow
	switch kind {
	case ReportCertificates:
		certificates, err := s.repo.ListCertificates(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list certificates: %w", err)
		}
		for i := range certificates {
			c := certificates[i]
			c.EmployeeName = nameOrFallback(names, c.EmployeeID)
			d := c.ExpiryDate
			days := expiry.DaysRemainingAt(&d, now)
			rows = append(rows, ReportRow{
				Kind:          kind,
				Certificate:   &c,
				Status:        expiry.Bucket(days),
				DaysRemaining: days,
			})
		}
	case ReportTrainings:
		trainings, err := s.repo.ListTrainings(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list trainings: %w", err)
		}
		for i := range trainings {
			t := trainings[i]
			t.EmployeeName = nameOrFallback(names, t.EmployeeID)
			days := expiry.DaysRemainingAt(t.ExpiryDate, now)
			rows = append(rows, ReportRow{
				Kind:          kind,
				Training:      &t,
				Status:        expiry.Bucket(days),
				DaysRemaining: days,
			})
		}
	case ReportEquipment:
		issuances, err := s.repo.ListEquipment(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list equipment issuances: %w", err)
		}
		for i := range issuances {
			q := issuances[i]
			q.EmployeeName = nameOrFallback(names, q.EmployeeID)
			days := expiry.DaysRemainingAt(q.ExpiryDate, now)
			rows = append(rows, ReportRow{
				Kind:          kind,
				Equipment:     &q,
				Status:        expiry.Bucket(days),
				DaysRemaining: days,
			})
		}
	}

	var filtered []ReportRow
	for _, row := range rows {
		if matchesFilter(row, filter) {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// Statistics returns the dashboard counters. The expiring counters use an
// inclusive 0..30 day window, one day wider than the list bucket, so a record
// exactly 30 days out counts as expiring here while listing as valid.
func (s *ReportService) Statistics(ctx context.Context, companyID uuid.UUID) (*Statistics, error) {
	certificates, trainings, issuances, _, err := s.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	employees, err := s.repo.ListEmployees(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	now := s.now()

	stats := &Statistics{}
	for _, emp := range employees {
		if emp.Status == models.EmployeeActive {
			stats.ActiveEmployees++
		}
	}
	stats.TotalCertificates = len(certificates)
	for _, c := range certificates {
		d := c.ExpiryDate
		tallyStats(expiry.DaysRemainingAt(&d, now), &stats.ExpiredCertificates, &stats.ExpiringCertificates)
	}
	stats.TotalTrainings = len(trainings)
	for _, t := range trainings {
		tallyStats(expiry.DaysRemainingAt(t.ExpiryDate, now), &stats.ExpiredTrainings, &stats.ExpiringTrainings)
	}
	stats.TotalEquipment = len(issuances)
	for _, q := range issuances {
		tallyStats(expiry.DaysRemainingAt(q.ExpiryDate, now), &stats.ExpiredEquipment, &stats.ExpiringEquipment)
	}
	return stats, nil
}

func (s *ReportService) load(ctx context.Context, companyID uuid.UUID) ([]models.Certificate, []models.Training, []models.Equipment, map[uuid.UUID]string, error) {
	certificates, err := s.repo.ListCertificates(ctx, companyID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	trainings, err := s.repo.ListTrainings(ctx, companyID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list trainings: %w", err)
	}
	issuances, err := s.repo.ListEquipment(ctx, companyID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list equipment issuances: %w", err)
	}
	names, err := employeeNames(ctx, s.repo, companyID)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return certificates, trainings, issuances, names, nil
}

func tallyStats(days *int, expired, expiring *int) {
	if days == nil {
		return
	}
	switch {
	case *days < 0:
		*expired++
	case *days <= expiry.ExpiringSoonDays:
		*expiring++
	}
}

func matchesFilter(row ReportRow, filter ReportFilter) bool {
	if filter.Status != "" && row.Status != filter.Status {
		return false
	}
	employeeID, expiryDate := rowKey(row)
	if filter.EmployeeID != uuid.Nil && employeeID != filter.EmployeeID {
		return false
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		if expiryDate == nil {
			return false
		}
		if !filter.From.IsZero() && expiryDate.Before(filter.From) {
			return false
		}
		if !filter.To.IsZero() && expiryDate.After(filter.To) {
			return false
		}
	}
	return true
}

// rowKey extracts the employee and the expiry date the range filter bounds.
// Records with no expiry date never match a ranged filter.
func rowKey(row ReportRow) (uuid.UUID, *time.Time) {
	switch {
	case row.Certificate != nil:
		return row.Certificate.EmployeeID, &row.Certificate.ExpiryDate
	case row.Training != nil:
		return row.Training.EmployeeID, row.Training.ExpiryDate
	case row.Equipment != nil:
		return row.Equipment.EmployeeID, row.Equipment.ExpiryDate
	}
	return uuid.Nil, nil
}
