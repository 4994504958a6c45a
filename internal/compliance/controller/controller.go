// Package controller implements the business logic of the compliance record
// keeper: tenant-scoped CRUD on employees and their records, the
// certificate active/history lifecycle, and the expiry reporting used by
// dashboards and exports.
package controller

import (
	"context"

	"github.com/rbarros/vigia/internal/compliance/events"
	"github.com/rbarros/vigia/internal/compliance/models"
	"github.com/google/uuid"
)

// EventProducer publishes domain events; implementations must not block.
type EventProducer interface {
	Produce(eventType events.EventType, key string, payload interface{})
}

// EmployeeLister is the slice of the repository needed to project employee
// names onto records. Names are joined in memory, never stored on the rows.
type EmployeeLister interface {
	ListEmployees(ctx context.Context, companyID uuid.UUID) ([]models.Employee, error)
}

// employeeNames returns an id -> full name map for one tenant.
func employeeNames(ctx context.Context, repo EmployeeLister, companyID uuid.UUID) (map[uuid.UUID]string, error) {
	employees, err := repo.ListEmployees(ctx, companyID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}
	return names, nil
}

// nameOrFallback mirrors the original UI's placeholder for records whose
// employee row was deleted out from under them.
func nameOrFallback(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return "employee not found"
}
