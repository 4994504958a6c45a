package db

import (
	"context"
	"testing"
	"time"

	e "github.com/rbarros/vigia/internal/compliance/errors"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/rbarros/vigia/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupTestDB initializes an in-memory SQLite database for testing.
func SetupTestDB(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, migrate(db), "failed to migrate test database")

	return &Repository{db: db}
}

func newTestEmployee(companyID uuid.UUID, name, registration string) *models.Employee {
	return &models.Employee{
		ID:            uuid.New(),
		CompanyID:     companyID,
		Name:          name,
		Registration:  registration,
		JobTitle:      "Welder",
		AdmissionDate: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		Status:        models.EmployeeActive,
	}
}

func TestCreateAndGetCompany(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	company := &models.Company{
		ID:     uuid.New(),
		Name:   "Metalurgica Silva",
		TaxID:  "12.345.678/0001-00",
		Plan:   models.PlanBasic,
		Active: true,
	}

	require.NoError(t, repo.CreateCompany(ctx, company))

	retrieved, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, company.Name, retrieved.Name)
	assert.Equal(t, company.Plan, retrieved.Plan)
}

func TestGetCompanyNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	_, err := repo.GetCompany(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestUpdateCompanyPartial(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	company := &models.Company{ID: uuid.New(), Name: "Old Name", Active: true}
	require.NoError(t, repo.CreateCompany(ctx, company))

	status := models.PaymentPaid
	update := &models.CompanyUpdate{
		ID:            company.ID,
		Plan:          utils.Ptr(models.PlanPremium),
		PaymentStatus: &status,
	}
	require.NoError(t, repo.UpdateCompany(ctx, company.ID, update))

	retrieved, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Old Name", retrieved.Name, "untouched fields must survive a partial update")
	assert.Equal(t, models.PlanPremium, retrieved.Plan)
	assert.Equal(t, models.PaymentPaid, retrieved.PaymentStatus)
}

func TestUpdateCompanyNotFound(t *testing.T) {
	repo := SetupTestDB(t)

	err := repo.UpdateCompany(context.Background(), uuid.New(), &models.CompanyUpdate{Name: utils.Ptr("x")})
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCreateEmployeeDuplicateRegistration(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyID := uuid.New()

	first := newTestEmployee(companyID, "Ana Souza", "REG-001")
	require.NoError(t, repo.CreateEmployee(ctx, first))

	duplicate := newTestEmployee(companyID, "Bruno Lima", "REG-001")
	err := repo.CreateEmployee(ctx, duplicate)
	assert.ErrorIs(t, err, e.ErrDuplicateRegistration)

	// The same registration in another tenant is fine.
	other := newTestEmployee(uuid.New(), "Carla Reis", "REG-001")
	assert.NoError(t, repo.CreateEmployee(ctx, other))
}

func TestEmployeeTenantScoping(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyID := uuid.New()

	employee := newTestEmployee(companyID, "Ana Souza", "REG-001")
	require.NoError(t, repo.CreateEmployee(ctx, employee))

	_, err := repo.GetEmployee(ctx, uuid.New(), employee.ID)
	assert.ErrorIs(t, err, e.ErrNotFound, "another tenant must not see the employee")

	err = repo.DeleteEmployee(ctx, uuid.New(), employee.ID)
	assert.ErrorIs(t, err, e.ErrNotFound, "another tenant must not delete the employee")

	got, err := repo.GetEmployee(ctx, companyID, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", got.Name)
}

func TestListEmployeesOrdered(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyID := uuid.New()

	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee(companyID, "Carlos", "R2")))
	require.NoError(t, repo.CreateEmployee(ctx, newTestEmployee(companyID, "Ana", "R1")))

	employees, err := repo.ListEmployees(ctx, companyID)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ana", employees[0].Name)
	assert.Equal(t, "Carlos", employees[1].Name)
}

func TestUpdateEmployeePartial(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyID := uuid.New()

	employee := newTestEmployee(companyID, "Ana Souza", "REG-001")
	require.NoError(t, repo.CreateEmployee(ctx, employee))

	status := models.EmployeeOnLeave
	update := &models.EmployeeUpdate{
		ID:     employee.ID,
		Status: &status,
	}
	require.NoError(t, repo.UpdateEmployee(ctx, companyID, update))

	got, err := repo.GetEmployee(ctx, companyID, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmployeeOnLeave, got.Status)
	assert.Equal(t, "Ana Souza", got.Name)
	assert.Equal(t, "REG-001", got.Registration)
}

func TestTrainingCRUD(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyID := uuid.New()
	employeeID := uuid.New()

	training := &models.Training{
		ID:             uuid.New(),
		CompanyID:      companyID,
		EmployeeID:     employeeID,
		Regulation:     "NR-35",
		Description:    "Work at height",
		CompletionDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		ExpiryDate:     utils.Ptr(time.Date(2027, 5, 10, 0, 0, 0, 0, time.UTC)),
		Institution:    "SENAI",
		Hours:          8,
	}
	require.NoError(t, repo.CreateTraining(ctx, training))

	got, err := repo.GetTraining(ctx, companyID, training.ID)
	require.NoError(t, err)
	assert.Equal(t, "NR-35", got.Regulation)
	require.NotNil(t, got.ExpiryDate)

	got.Institution = "SESI"
	require.NoError(t, repo.UpdateTraining(ctx, companyID, got))
	got, err = repo.GetTraining(ctx, companyID, training.ID)
	require.NoError(t, err)
	assert.Equal(t, "SESI", got.Institution)

	require.NoError(t, repo.DeleteTraining(ctx, companyID, training.ID))
	_, err = repo.GetTraining(ctx, companyID, training.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteTraining(ctx, companyID, training.ID), e.ErrNotFound)
}

func TestEquipmentCRUD(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	companyID := uuid.New()

	equipment := &models.Equipment{
		ID:             uuid.New(),
		CompanyID:      companyID,
		EmployeeID:     uuid.New(),
		Name:           "Safety Helmet",
		ApprovalNumber: "CA-12345",
		DeliveryDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Quantity:       2,
	}
	require.NoError(t, repo.CreateEquipment(ctx, equipment))

	got, err := repo.GetEquipment(ctx, companyID, equipment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Safety Helmet", got.Name)
	assert.Equal(t, 2, got.Quantity)

	_, err = repo.GetEquipment(ctx, uuid.New(), equipment.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)

	require.NoError(t, repo.DeleteEquipment(ctx, companyID, equipment.ID))
	assert.ErrorIs(t, repo.DeleteEquipment(ctx, companyID, equipment.ID), e.ErrNotFound)
}
