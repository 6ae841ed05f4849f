package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/pkg/dbmetrics"
	"github.com/wissen-infra/seat-booking-service/pkg/psqlbuilder"
)

// Имена частичных уникальных индексов из миграции
// По ним различаем, какой из двух инвариантов уникальности нарушен
const (
	uniqueSeatConstraint     = "uniq_confirmed_seat_per_day"
	uniqueEmployeeConstraint = "uniq_confirmed_employee_per_day"
)

const bookingColumns = "id, employee_id, booking_date, seat_number, status, is_extra, cancelled_at, created_at, updated_at"

// Repository репозиторий для работы с бронированиями мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateConfirmed вставляет новое подтвержденное бронирование
//
// Атомарность check-and-insert обеспечивается уникальными индексами БД:
// частичные индексы по (booking_date, seat_number) и (booking_date,
// employee_id) среди строк со статусом confirmed гарантируют, что из двух
// одновременных вставок пройдет ровно одна, независимо от того, что каждая
// из них успела прочитать. Нарушение маппится в ErrSeatTaken /
// ErrEmployeeAlreadyBooked
func (r *Repository) CreateConfirmed(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"employee_id",
			"booking_date",
			"seat_number",
			"status",
			"is_extra",
		).
		Values(
			booking.ID,
			booking.EmployeeID,
			booking.Date,
			booking.SeatNumber,
			domain.StatusConfirmed,
			booking.IsExtra,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateConfirmed - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err != nil {
		if conflictErr := mapUniqueViolation(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, fmt.Errorf("%w: CreateConfirmed - execute insert: %v", ErrExecQuery, err)
	}

	booking.Status = domain.StatusConfirmed
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// mapUniqueViolation распознает нарушение уникальных индексов бронирований
// Возвращает nil, если ошибка не про них
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code.Name() != "unique_violation" {
		return nil
	}

	switch pqErr.Constraint {
	case uniqueSeatConstraint:
		return ErrSeatTaken
	case uniqueEmployeeConstraint:
		return ErrEmployeeAlreadyBooked
	default:
		return nil
	}
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindConfirmedSeat ищет активное бронирование места на дату
// Возвращает nil без ошибки, если место свободно
func (r *Repository) FindConfirmedSeat(ctx context.Context, date time.Time, seatNumber int) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{
			"booking_date": date,
			"seat_number":  seatNumber,
			"status":       domain.StatusConfirmed,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedSeat - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedSeat - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// FindConfirmedByEmployee ищет активное бронирование сотрудника на дату
// Возвращает nil без ошибки, если бронирования нет
func (r *Repository) FindConfirmedByEmployee(ctx context.Context, date time.Time, employeeID uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{
			"booking_date": date,
			"employee_id":  employeeID,
			"status":       domain.StatusConfirmed,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedByEmployee - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetConfirmedByDate получает все активные бронирования на дату
// Используется для карты мест
func (r *Repository) GetConfirmedByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{
			"booking_date": date,
			"status":       domain.StatusConfirmed,
		}).
		OrderBy("seat_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByEmployee получает историю бронирований сотрудника
// Опционально фильтрует по статусу
func (r *Repository) GetByEmployee(ctx context.Context, filter domain.EmployeeBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"employee_id": filter.EmployeeID}).
		OrderBy("booking_date DESC, created_at DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmployee - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetDayBookings получает бронирования на дату с данными сотрудников
// Используется в админском аудите; отмененные включаются по флагу
func (r *Repository) GetDayBookings(ctx context.Context, date time.Time, includeCancelled bool) ([]*domain.DayBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"b.id",
		"b.employee_id",
		"b.booking_date",
		"b.seat_number",
		"b.status",
		"b.is_extra",
		"b.cancelled_at",
		"b.created_at",
		"b.updated_at",
		"e.name",
		"e.email",
		"e.batch",
	).
		From("bookings b").
		Join("employees e ON e.id = b.employee_id").
		Where(squirrel.Eq{"b.booking_date": date}).
		OrderBy("b.seat_number ASC, b.created_at ASC")

	if !includeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": domain.StatusConfirmed})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBookings - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayBookings - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.DayBooking, 0)
	for rows.Next() {
		var db domain.DayBooking
		var cancelledAt sql.NullTime
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&db.ID,
			&db.EmployeeID,
			&db.Date,
			&db.SeatNumber,
			&db.Status,
			&db.IsExtra,
			&cancelledAt,
			&createdAt,
			&updatedAt,
			&db.EmployeeName,
			&db.EmployeeEmail,
			&db.EmployeeBatch,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetDayBookings - scan row: %v", ErrScanRow, err)
		}

		if cancelledAt.Valid {
			db.CancelledAt = &cancelledAt.Time
		}
		db.CreatedAt = createdAt.Time
		db.UpdatedAt = updatedAt.Time

		result = append(result, &db)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayBookings - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// Cancel переводит бронирование в статус cancelled (soft-delete)
// Физическое удаление не используется - история сохраняется для аудита
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// selectBookings возвращает builder со стандартным набором колонок
func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"employee_id",
		"booking_date",
		"seat_number",
		"status",
		"is_extra",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.EmployeeID,
		&booking.Date,
		&booking.SeatNumber,
		&booking.Status,
		&booking.IsExtra,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
