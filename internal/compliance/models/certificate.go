package models

import (
	"time"

	"github.com/google/uuid"
)

// CertificateCategory is the occasion a medical fitness certificate (ASO)
// was issued for.
type CertificateCategory string

const (
	CategoryAdmission    CertificateCategory = "admission"
	CategoryPeriodic     CertificateCategory = "periodic"
	CategoryReturnToWork CertificateCategory = "return_to_work"
	CategoryRoleChange   CertificateCategory = "role_change"
	CategoryTermination  CertificateCategory = "termination"
)

// CertificateStatus distinguishes the single active certificate of an
// employee from the archived ones it replaced.
type CertificateStatus string

const (
	// CertificateValid is the status of every row in the active set.
	CertificateValid CertificateStatus = "valid"
	// CertificateSuperseded marks an archived certificate that was replaced
	// by a newer one for the same employee.
	CertificateSuperseded CertificateStatus = "superseded"
)

// Certificate is a medical fitness certificate (ASO). At most one active
// certificate exists per employee; saving a new one archives the previous.
type Certificate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index"`
	Category   CertificateCategory
	// IssueDate is entered by the user; ExpiryDate is always derived from it
	// (issue date plus one calendar year) and never user-editable.
	IssueDate  time.Time
	ExpiryDate time.Time
	// Physician and License identify the examining physician (CRM).
	Physician string
	License   string
	Notes     string
	Status    CertificateStatus
	// EmployeeName is a read-time projection joined from the employees
	// table. It is not a stored column and is never copied into history.
	EmployeeName string `gorm:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ArchivedCertificate is a certificate that was moved to the history set
// when a newer one was saved for the same employee.
type ArchivedCertificate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;index"`
	// OriginalID is the id the row had while it was in the active set.
	OriginalID   uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;index"`
	Category     CertificateCategory
	IssueDate    time.Time
	ExpiryDate   time.Time
	Physician    string
	License      string
	Notes        string
	Status       CertificateStatus
	EmployeeName string `gorm:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName keeps the archive in its own table, separate from the active set.
func (ArchivedCertificate) TableName() string { return "certificate_history" }
