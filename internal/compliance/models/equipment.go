package models

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentCatalog lists the common protective-equipment names offered in
// the issuance form. Free text is also accepted ("Other").
var EquipmentCatalog = []string{
	"Safety Helmet",
	"Protective Goggles",
	"Hearing Protector",
	"Respirator Mask",
	"Protective Gloves",
	"Safety Footwear",
	"Safety Harness",
	"Protective Clothing",
	"Face Shield",
	"Other",
}

// Equipment is a personal-protective-equipment issuance record (EPI).
type Equipment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID `gorm:"type:uuid;index"`
	// Name is the equipment name, from EquipmentCatalog or free text.
	Name string
	// ApprovalNumber is the equipment approval certificate number (CA).
	ApprovalNumber string
	DeliveryDate   time.Time
	// ExpiryDate is optional; nil means the issuance never expires.
	ExpiryDate *time.Time
	Quantity   int
	Notes      string
	// EmployeeName is a read-time projection, not a stored column.
	EmployeeName string `gorm:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName avoids the awkward default pluralization of "equipment".
func (Equipment) TableName() string { return "equipment" }
