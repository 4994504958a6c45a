package controller

import (
	"context"
	"testing"
	"time"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/expiry"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/rbarros/vigia/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeReportRepository serves canned slices to the report service.
type fakeReportRepository struct {
	employees    []models.Employee
	certificates []models.Certificate
	trainings    []models.Training
	equipment    []models.Equipment
}

func (f *fakeReportRepository) ListEmployees(context.Context, uuid.UUID) ([]models.Employee, error) {
	return f.employees, nil
}

func (f *fakeReportRepository) ListCertificates(context.Context, uuid.UUID) ([]models.Certificate, error) {
	return f.certificates, nil
}

func (f *fakeReportRepository) ListTrainings(context.Context, uuid.UUID) ([]models.Training, error) {
	return f.trainings, nil
}

func (f *fakeReportRepository) ListEquipment(context.Context, uuid.UUID) ([]models.Equipment, error) {
	return f.equipment, nil
}

func newReportService(t *testing.T, repo ReportRepository, now time.Time) *ReportService {
	svc := NewReportService(repo, zaptest.NewLogger(t))
	svc.now = func() time.Time { return now }
	return svc
}

func day(offset int, now time.Time) time.Time {
	return now.AddDate(0, 0, offset)
}

func TestExpiringFeed_WindowAndOrder(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 30, 0, 0, time.UTC)
	companyID := uuid.New()
	employee := models.Employee{ID: uuid.New(), Name: "Ana Souza", Status: models.EmployeeActive}

	repo := &fakeReportRepository{
		employees: []models.Employee{employee},
		certificates: []models.Certificate{
			{ID: uuid.New(), EmployeeID: employee.ID, Category: models.CategoryPeriodic,
				ExpiryDate: day(-3, now), Status: models.CertificateValid},
			{ID: uuid.New(), EmployeeID: employee.ID, Category: models.CategoryPeriodic,
				ExpiryDate: day(65, now), Status: models.CertificateValid},
		},
		trainings: []models.Training{
			{ID: uuid.New(), EmployeeID: employee.ID, Regulation: "NR-35",
				ExpiryDate: utils.Ptr(day(45, now))},
			{ID: uuid.New(), EmployeeID: employee.ID, Regulation: "NR-10"}, // no expiry
		},
		equipment: []models.Equipment{
			{ID: uuid.New(), EmployeeID: employee.ID, Name: "Safety Helmet",
				ExpiryDate: utils.Ptr(day(10, now))},
		},
	}

	svc := newReportService(t, repo, now)
	feed, err := svc.ExpiringFeed(context.Background(), companyID)
	require.NoError(t, err)

	require.Len(t, feed, 3, "65 days out and no-expiry records stay out of the feed")
	assert.Equal(t, -3, feed[0].DaysRemaining, "soonest first, expired included")
	assert.Equal(t, 10, feed[1].DaysRemaining)
	assert.Equal(t, 45, feed[2].DaysRemaining, "44..59 days is still inside the window")
	assert.Equal(t, "Ana Souza", feed[0].EmployeeName)
	assert.Equal(t, ReportEquipment, feed[1].Kind)
}

func TestExpiringFeed_CutoffExclusive(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeReportRepository{
		certificates: []models.Certificate{
			{ID: uuid.New(), EmployeeID: uuid.New(), ExpiryDate: day(59, now)},
			{ID: uuid.New(), EmployeeID: uuid.New(), ExpiryDate: day(60, now)},
		},
	}

	svc := newReportService(t, repo, now)
	feed, err := svc.ExpiringFeed(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, feed, 1)
	assert.Equal(t, 59, feed[0].DaysRemaining, "exactly 60 days out is excluded")
}

func TestReport_StatusAndFilters(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	companyID := uuid.New()
	ana := models.Employee{ID: uuid.New(), Name: "Ana Souza"}
	bruno := models.Employee{ID: uuid.New(), Name: "Bruno Lima"}

	repo := &fakeReportRepository{
		employees: []models.Employee{ana, bruno},
		certificates: []models.Certificate{
			{ID: uuid.New(), EmployeeID: ana.ID, IssueDate: day(-370, now), ExpiryDate: day(-5, now)},
			{ID: uuid.New(), EmployeeID: ana.ID, IssueDate: day(-350, now), ExpiryDate: day(15, now)},
			{ID: uuid.New(), EmployeeID: bruno.ID, IssueDate: day(-100, now), ExpiryDate: day(265, now)},
		},
	}
	svc := newReportService(t, repo, now)
	ctx := context.Background()

	rows, err := svc.Report(ctx, companyID, ReportCertificates, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	statuses := map[expiry.Status]int{}
	for _, row := range rows {
		statuses[row.Status]++
	}
	assert.Equal(t, 1, statuses[expiry.StatusExpired])
	assert.Equal(t, 1, statuses[expiry.StatusExpiring])
	assert.Equal(t, 1, statuses[expiry.StatusValid])

	rows, err = svc.Report(ctx, companyID, ReportCertificates, ReportFilter{Status: expiry.StatusExpiring})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Souza", rows[0].Certificate.EmployeeName)

	rows, err = svc.Report(ctx, companyID, ReportCertificates, ReportFilter{EmployeeID: bruno.ID})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, bruno.ID, rows[0].Certificate.EmployeeID)

	// Inclusive date range on the expiry date.
	rows, err = svc.Report(ctx, companyID, ReportCertificates, ReportFilter{
		From: day(-5, now),
		To:   day(15, now),
	})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	_, err = svc.Report(ctx, companyID, "unknown", ReportFilter{})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestReport_RangeFiltersOnExpiryDate(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	companyID := uuid.New()
	employee := models.Employee{ID: uuid.New(), Name: "Ana Souza"}

	repo := &fakeReportRepository{
		employees: []models.Employee{employee},
		certificates: []models.Certificate{
			{ID: uuid.New(), EmployeeID: employee.ID,
				IssueDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				ExpiryDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
		trainings: []models.Training{
			{ID: uuid.New(), EmployeeID: employee.ID, Regulation: "NR-35",
				CompletionDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
				ExpiryDate:     utils.Ptr(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC))},
			{ID: uuid.New(), EmployeeID: employee.ID, Regulation: "NR-10",
				CompletionDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)}, // no expiry
		},
	}
	svc := newReportService(t, repo, now)
	ctx := context.Background()

	filter := ReportFilter{
		From: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	rows, err := svc.Report(ctx, companyID, ReportCertificates, filter)
	require.NoError(t, err)
	require.Len(t, rows, 1, "the certificate expires inside the range even though it was issued before it")

	rows, err = svc.Report(ctx, companyID, ReportTrainings, filter)
	require.NoError(t, err)
	assert.Empty(t, rows, "completed inside the range but expiring outside it, and no-expiry records never match a ranged filter")

	rows, err = svc.Report(ctx, companyID, ReportTrainings, ReportFilter{})
	require.NoError(t, err)
	assert.Len(t, rows, 2, "without a range the no-expiry training still lists")
}

func TestStatistics_InclusiveExpiringWindow(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	companyID := uuid.New()

	repo := &fakeReportRepository{
		employees: []models.Employee{
			{ID: uuid.New(), Status: models.EmployeeActive},
			{ID: uuid.New(), Status: models.EmployeeActive},
			{ID: uuid.New(), Status: models.EmployeeInactive},
		},
		certificates: []models.Certificate{
			{ID: uuid.New(), ExpiryDate: day(-1, now)},
			{ID: uuid.New(), ExpiryDate: day(0, now)},
			{ID: uuid.New(), ExpiryDate: day(30, now)},
			{ID: uuid.New(), ExpiryDate: day(31, now)},
		},
		trainings: []models.Training{
			{ID: uuid.New(), ExpiryDate: utils.Ptr(day(30, now))},
			{ID: uuid.New()}, // no expiry, counts in total only
		},
		equipment: []models.Equipment{
			{ID: uuid.New(), ExpiryDate: utils.Ptr(day(-10, now))},
		},
	}

	svc := newReportService(t, repo, now)
	stats, err := svc.Statistics(context.Background(), companyID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ActiveEmployees)
	assert.Equal(t, 4, stats.TotalCertificates)
	assert.Equal(t, 1, stats.ExpiredCertificates)
	assert.Equal(t, 2, stats.ExpiringCertificates, "day 30 counts as expiring in statistics")
	assert.Equal(t, 2, stats.TotalTrainings)
	assert.Equal(t, 0, stats.ExpiredTrainings)
	assert.Equal(t, 1, stats.ExpiringTrainings)
	assert.Equal(t, 1, stats.TotalEquipment)
	assert.Equal(t, 1, stats.ExpiredEquipment)
	assert.Equal(t, 0, stats.ExpiringEquipment)
}

func TestStatisticsVersusListBucketBoundary(t *testing.T) {
	now := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	companyID := uuid.New()

	repo := &fakeReportRepository{
		certificates: []models.Certificate{
			{ID: uuid.New(), EmployeeID: uuid.New(), ExpiryDate: day(30, now)},
		},
	}
	svc := newReportService(t, repo, now)
	ctx := context.Background()

	stats, err := svc.Statistics(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ExpiringCertificates)

	rows, err := svc.Report(ctx, companyID, ReportCertificates, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, expiry.StatusValid, rows[0].Status,
		"the same record lists as valid: the statistics window is one day wider")
}
