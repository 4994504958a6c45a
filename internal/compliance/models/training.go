package models

import (
	"time"

	"github.com/google/uuid"
)

// Regulations is the fixed catalog of regulatory safety-training numbers
// (NRs) a training record may reference.
var Regulations = []string{
	"NR-01", "NR-05", "NR-06", "NR-10", "NR-11", "NR-12", "NR-13",
	"NR-17", "NR-18", "NR-20", "NR-23", "NR-33", "NR-35",
}

// Training is a regulatory safety-training completion record (NR). Unlike
// certificates there is no active/history duality; an employee may hold any
// number of concurrent trainings.
type Training struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index"`
	// Regulation is one of the catalog numbers in Regulations.
	Regulation  string
	Description string
	// CompletionDate is when the training was concluded; ExpiryDate is
	// user-entered and optional (nil means no expiry constraint).
	CompletionDate time.Time
	ExpiryDate     *time.Time
	Institution    string
	Hours          int
	Notes          string
	// EmployeeName is a read-time projection, not a stored column.
	EmployeeName string `gorm:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRegulation reports whether number is part of the NR catalog.
func ValidRegulation(number string) bool {
	for _, r := range Regulations {
		if r == number {
			return true
		}
	}
	return false
}
