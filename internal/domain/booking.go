package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a seat booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reservation of one office seat for one calendar day.
// A booking is never physically deleted: cancellation is a status transition,
// so history stays available for the admin audit.
type Booking struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Date       time.Time // calendar date, no time component
	SeatNumber int       // 1..TotalSeats
	Status     BookingStatus

	// IsExtra is fixed by the eligibility rule at creation time and is
	// never recomputed afterwards
	IsExtra bool

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking counts toward the uniqueness invariants
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// DayBooking бронирование с денормализованными данными сотрудника
// Используется в админском аудите дня
type DayBooking struct {
	Booking
	EmployeeName  string
	EmployeeEmail string
	EmployeeBatch Batch
}

// EmployeeBookingsFilter фильтр для получения истории бронирований сотрудника
type EmployeeBookingsFilter struct {
	EmployeeID uuid.UUID
	Status     *BookingStatus // nil - все статусы
}
