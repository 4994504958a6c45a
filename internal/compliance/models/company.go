// Package models defines the core domain models of the compliance record
// keeper: the tenant Company and the four record kinds it owns (employees,
// medical certificates, safety trainings and protective-equipment issuances).
package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the billing state of a company subscription.
type PaymentStatus string

const (
	// PaymentPaid means the last charge for the subscription succeeded.
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
	PaymentFailed  PaymentStatus = "failed"
)

// Subscription plan identifiers. The billing package holds the price catalog.
const (
	PlanBasic   = "price_basic_monthly"
	PlanPremium = "price_premium_monthly"
)

// Company is the tenant. Every employee and every compliance record is owned
// by exactly one company; all reads and writes are scoped to it.
type Company struct {
	// ID is the unique identifier for the company.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Name is the company's legal name.
	Name string
	// TaxID is the company's tax registration number (CNPJ).
	TaxID string
	// Plan is the subscription plan identifier (see billing.Plans).
	Plan string
	// PaymentStatus reflects the last known state of the subscription.
	PaymentStatus PaymentStatus
	// NextDueDate is the next billing date; nil before the first payment.
	NextDueDate *time.Time
	// CustomerID and SubscriptionID are opaque payment-provider references.
	CustomerID     string
	SubscriptionID string
	// Active gates access to the service; toggled by platform admins.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanyUpdate represents the fields that can be updated for a Company.
// Pointer types are used to allow partial updates.
type CompanyUpdate struct {
	ID             uuid.UUID
	Name           *string
	TaxID          *string
	Plan           *string
	PaymentStatus  *PaymentStatus
	NextDueDate    *time.Time
	CustomerID     *string
	SubscriptionID *string
	Active         *bool
}
