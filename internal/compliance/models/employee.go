package models

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus enumerates the employment states tracked by the system.
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeInactive   EmployeeStatus = "inactive"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
	EmployeeOnVacation EmployeeStatus = "on_vacation"
)

// Employee is a worker whose medical certificates, trainings and equipment
// issuances the company must keep current.
type Employee struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_company_registration"`
	// Name is the employee's full name.
	Name string
	// JobTitle and Department describe the role the certificates cover.
	JobTitle   string
	Department string
	// Registration is the badge/registration number, unique per company.
	Registration string `gorm:"uniqueIndex:idx_company_registration"`
	// AdmissionDate is when the employee joined the company.
	AdmissionDate time.Time
	Status        EmployeeStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EmployeeUpdate represents the fields that can be updated for an Employee.
type EmployeeUpdate struct {
	ID            uuid.UUID
	Name          *string
	JobTitle      *string
	Department    *string
	Registration  *string
	AdmissionDate *time.Time
	Status        *EmployeeStatus
}
