package domain

import (
	"time"

	"github.com/google/uuid"
)

// Batch is one of the two employee cohorts whose assigned in-office
// weekdays alternate biweekly
type Batch int

const (
	Batch1 Batch = 1
	Batch2 Batch = 2
)

// IsValid returns true for one of the two known batches
func (b Batch) IsValid() bool {
	return b == Batch1 || b == Batch2
}

// Other returns the opposite batch
func (b Batch) Other() Batch {
	if b == Batch1 {
		return Batch2
	}
	return Batch1
}

// Role represents the access level of an employee
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Employee represents an employee participating in the seat rotation
type Employee struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Batch     Batch
	Role      Role
	CreatedAt time.Time
}

// IsAdmin returns true if the employee holds administrative privilege
func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
