package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	employeeRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/employee"
	"github.com/wissen-infra/seat-booking-service/internal/service/schedule/models"
)

// Service сервис расписания: проверка права на бронирование,
// активная ротация и карта мест на дату
type Service struct {
	bookingRepo  BookingRepository
	employeeRepo EmployeeRepository
	evaluator    EligibilityEvaluator
	calendar     RotationCalendar
	timeProvider TimeProvider
	totalSeats   int
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(
	bookingRepo BookingRepository,
	employeeRepo EmployeeRepository,
	evaluator EligibilityEvaluator,
	calendar RotationCalendar,
	totalSeats int,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		employeeRepo: employeeRepo,
		evaluator:    evaluator,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		totalSeats:   totalSeats,
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// CheckEligibility возвращает решение evaluator'а для батча сотрудника
// на целевую дату, не создавая бронирования
func (s *Service) CheckEligibility(ctx context.Context, employeeID uuid.UUID, date time.Time) (*models.DecisionResponse, error) {
	s.logger.Info("CheckEligibility: employee=%s, date=%s", employeeID, date.Format(domain.DateFormat))

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			s.logger.Warn("CheckEligibility: employee %s not found", employeeID)
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("CheckEligibility: failed to get employee %s: %v", employeeID, err)
		return nil, fmt.Errorf("%w: CheckEligibility - failed to get employee: %v", ErrInternal, err)
	}

	decision := s.evaluator.Evaluate(emp.Batch, date, s.timeProvider.Now())
	return models.FromDomainDecision(date, emp.Batch, decision), nil
}

// DaySchedule возвращает активную ротационную неделю и закрепленные
// дни недели обоих батчей на дату
func (s *Service) DaySchedule(date time.Time) *models.DayScheduleResponse {
	return &models.DayScheduleResponse{
		Date:         date.Format(domain.DateFormat),
		RotationWeek: s.calendar.RotationWeek(date),
		Batches: []models.BatchScheduleResponse{
			{
				Batch:    int(domain.Batch1),
				Weekdays: models.WeekdayNames(s.calendar.AssignedWeekdays(domain.Batch1, date)),
			},
			{
				Batch:    int(domain.Batch2),
				Weekdays: models.WeekdayNames(s.calendar.AssignedWeekdays(domain.Batch2, date)),
			},
		},
	}
}

// SeatMap возвращает занятые места на дату
// Состояние каждый раз перечитывается из хранилища: карта мест не
// кэшируется, чтобы не раздавать устаревшие данные
func (s *Service) SeatMap(ctx context.Context, date time.Time) (*models.SeatMapResponse, error) {
	bookings, err := s.bookingRepo.GetConfirmedByDate(ctx, date)
	if err != nil {
		s.logger.Error("SeatMap: repository error for date %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: SeatMap - repository error: %v", ErrInternal, err)
	}

	booked := make([]int, 0, len(bookings))
	for _, b := range bookings {
		booked = append(booked, b.SeatNumber)
	}

	return &models.SeatMapResponse{
		Date:        date.Format(domain.DateFormat),
		TotalSeats:  s.totalSeats,
		BookedSeats: booked,
		FreeSeats:   s.totalSeats - len(booked),
	}, nil
}
