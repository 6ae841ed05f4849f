package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// EmployeeRepository интерфейс репозитория сотрудников
type EmployeeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

// EligibilityEvaluator интерфейс evaluator'а правил бронирования
type EligibilityEvaluator interface {
	Evaluate(batch domain.Batch, targetDate, now time.Time) domain.Decision
}

// RotationCalendar интерфейс календаря ротации
type RotationCalendar interface {
	RotationWeek(date time.Time) int
	AssignedWeekdays(batch domain.Batch, date time.Time) []time.Weekday
	IsRegularDay(batch domain.Batch, date time.Time) bool
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
