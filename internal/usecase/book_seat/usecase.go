package book_seat

import (
	"context"
	"errors"
	"fmt"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	bookingRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/booking"
	employeeRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/employee"
)

// UseCase use case бронирования места: проверка права на бронирование
// и атомарное занятие места одним решением
type UseCase struct {
	bookingRepo  BookingRepository
	employeeRepo EmployeeRepository
	evaluator    EligibilityEvaluator
	txManager    TransactionManager
	timeProvider TimeProvider
	totalSeats   int
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	employeeRepo EmployeeRepository,
	evaluator EligibilityEvaluator,
	txManager TransactionManager,
	totalSeats int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		employeeRepo: employeeRepo,
		evaluator:    evaluator,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		totalSeats:   totalSeats,
		logger:       logger,
	}
}

// WithTimeProvider подменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет бронирование места
//
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// а сами инварианты уникальности (одно активное бронирование на место
// и на сотрудника в день) дополнительно закреплены уникальными индексами
// БД: read-then-write гонка двух одновременных запросов на одно место
// разрешается на уровне хранилища, ровно один запрос проходит
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSeat: employee=%s, date=%s, seat=%d",
		req.EmployeeID, req.Date.Format(domain.DateFormat), req.SeatNumber)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.totalSeats); err != nil {
		uc.logger.Warn("BookSeat: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем сотрудника (нужен батч для правил ротации)
	emp, err := uc.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
			uc.logger.Warn("BookSeat: employee %s not found", req.EmployeeID)
			return nil, ErrEmployeeNotFound
		}
		uc.logger.Error("BookSeat: failed to get employee %s: %v", req.EmployeeID, err)
		return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
	}

	// 3. Проверяем право на бронирование; "now" передаем явно,
	// чтобы решение было детерминированной функцией входов
	now := uc.timeProvider.Now()
	decision := uc.evaluator.Evaluate(emp.Batch, req.Date, now)
	if !decision.Allowed {
		uc.logger.Warn("BookSeat: denied for employee=%s, date=%s: %s",
			req.EmployeeID, req.Date.Format(domain.DateFormat), decision.Reason)
		return nil, denyError(decision.Reason)
	}

	var result *domain.Booking

	// 4. Атомарный check-and-insert в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем, что место свободно
		existing, err := uc.bookingRepo.FindConfirmedSeat(txCtx, req.Date, req.SeatNumber)
		if err != nil {
			uc.logger.Error("BookSeat: failed to check seat: %v", err)
			return fmt.Errorf("%w: failed to check seat: %v", ErrInternal, err)
		}
		if existing != nil {
			return ErrSeatTaken
		}

		// 4.2. Проверяем, что у сотрудника нет активной брони на эту дату
		existing, err = uc.bookingRepo.FindConfirmedByEmployee(txCtx, req.Date, req.EmployeeID)
		if err != nil {
			uc.logger.Error("BookSeat: failed to check employee booking: %v", err)
			return fmt.Errorf("%w: failed to check employee booking: %v", ErrInternal, err)
		}
		if existing != nil {
			return ErrAlreadyBooked
		}

		// 4.3. Вставляем бронирование; уникальные индексы страхуют от
		// конкурентной вставки, которую мы не увидели на шагах 4.1-4.2
		booking := &domain.Booking{
			EmployeeID: req.EmployeeID,
			Date:       req.Date,
			SeatNumber: req.SeatNumber,
			Status:     domain.StatusConfirmed,
			IsExtra:    decision.IsExtra,
		}

		created, err := uc.bookingRepo.CreateConfirmed(txCtx, booking)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSeatTaken):
				return ErrSeatTaken
			case errors.Is(err, bookingRepo.ErrEmployeeAlreadyBooked):
				return ErrAlreadyBooked
			default:
				uc.logger.Error("BookSeat: failed to create booking: %v", err)
				return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookSeat: booked seat %d on %s for employee=%s (extra=%t, booking=%s)",
		result.SeatNumber, result.Date.Format(domain.DateFormat), result.EmployeeID, result.IsExtra, result.ID)

	return &Response{
		ID:         result.ID,
		EmployeeID: result.EmployeeID,
		Date:       result.Date,
		SeatNumber: result.SeatNumber,
		Status:     string(result.Status),
		IsExtra:    result.IsExtra,
		CreatedAt:  result.CreatedAt,
	}, nil
}
