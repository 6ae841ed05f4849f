package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByEmployee(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error)
	GetDayBookings(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.DayBooking, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
