package book_seat

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	FindConfirmedSeat(ctx context.Context, date time.Time, seatNumber int) (*domain.Booking, error)
	FindConfirmedByEmployee(ctx context.Context, date time.Time, employeeID uuid.UUID) (*domain.Booking, error)
	CreateConfirmed(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// EligibilityEvaluator интерфейс evaluator'а правил бронирования
type EligibilityEvaluator interface {
	Evaluate(batch domain.Batch, targetDate, now time.Time) domain.Decision
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
