package domain

import (
	"time"

	"github.com/google/uuid"
)

// Leave records a declared absence for a calendar day.
// The table exists in the schema but the booking rules do not read it yet.
type Leave struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Date       time.Time
	CreatedAt  time.Time
}
