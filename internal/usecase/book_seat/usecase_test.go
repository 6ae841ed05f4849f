package book_seat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/internal/eligibility"
	bookingRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/booking"
	employeeRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/employee"
	"github.com/wissen-infra/seat-booking-service/internal/rotation"
	"github.com/wissen-infra/seat-booking-service/pkg/types"
)

// Фейки

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*domain.Employee
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Employee, error) {
	emp, ok := r.employees[id]
	if !ok {
		return nil, employeeRepo.ErrEmployeeNotFound
	}
	return emp, nil
}

// fakeBookingStore in-memory хранилище, воспроизводящее уникальные
// индексы БД: из конкурентных вставок на одно место (или одного
// сотрудника) в день проходит ровно одна
type fakeBookingStore struct {
	mu     sync.Mutex
	bySeat map[string]*domain.Booking
	byEmp  map[string]*domain.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bySeat: make(map[string]*domain.Booking),
		byEmp:  make(map[string]*domain.Booking),
	}
}

func seatKey(date time.Time, seat int) string {
	return fmt.Sprintf("%s/%d", date.Format(domain.DateFormat), seat)
}

func empKey(date time.Time, employeeID uuid.UUID) string {
	return fmt.Sprintf("%s/%s", date.Format(domain.DateFormat), employeeID)
}

func (s *fakeBookingStore) FindConfirmedSeat(_ context.Context, date time.Time, seatNumber int) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bySeat[seatKey(date, seatNumber)], nil
}

func (s *fakeBookingStore) FindConfirmedByEmployee(_ context.Context, date time.Time, employeeID uuid.UUID) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byEmp[empKey(date, employeeID)], nil
}

func (s *fakeBookingStore) CreateConfirmed(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySeat[seatKey(booking.Date, booking.SeatNumber)]; taken {
		return nil, bookingRepo.ErrSeatTaken
	}
	if _, taken := s.byEmp[empKey(booking.Date, booking.EmployeeID)]; taken {
		return nil, bookingRepo.ErrEmployeeAlreadyBooked
	}

	stored := *booking
	stored.ID = uuid.New()
	stored.Status = domain.StatusConfirmed
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt

	s.bySeat[seatKey(stored.Date, stored.SeatNumber)] = &stored
	s.byEmp[empKey(stored.Date, stored.EmployeeID)] = &stored
	return &stored, nil
}

// fakeTxManager просто выполняет функцию: атомарность в тестах
// обеспечивает fakeBookingStore, как в проде - уникальные индексы
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time {
	return f.t
}

// Сборка окружения

type env struct {
	useCase   *UseCase
	store     *fakeBookingStore
	loc       *time.Location
	batch1Emp *domain.Employee
	batch2Emp *domain.Employee
}

func newEnv(t *testing.T, now time.Time) *env {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	calendar := rotation.NewCalendar(loc, anchor)

	cutoff, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)
	extraOpen, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)

	evaluator := eligibility.NewEvaluator(calendar, 14, cutoff, extraOpen)

	batch1Emp := &domain.Employee{ID: uuid.New(), Name: "Anita", Batch: domain.Batch1, Role: domain.RoleUser}
	batch2Emp := &domain.Employee{ID: uuid.New(), Name: "Priya", Batch: domain.Batch2, Role: domain.RoleUser}

	employees := &fakeEmployeeRepo{employees: map[uuid.UUID]*domain.Employee{
		batch1Emp.ID: batch1Emp,
		batch2Emp.ID: batch2Emp,
	}}

	store := newFakeBookingStore()

	uc := NewUseCase(store, employees, evaluator, fakeTxManager{}, 50, nopLogger{}).
		WithTimeProvider(fixedTime{t: now})

	return &env{
		useCase:   uc,
		store:     store,
		loc:       loc,
		batch1Emp: batch1Emp,
		batch2Emp: batch2Emp,
	}
}

func day(loc *time.Location, d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, loc)
}

// Тесты

func TestExecute_BooksRegularSeat(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	// Утро понедельника недели 1 - регулярный день батча 1
	e := newEnv(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	resp, err := e.useCase.Execute(context.Background(), &Request{
		EmployeeID: e.batch1Emp.ID,
		Date:       day(e.loc, 1),
		SeatNumber: 7,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, e.batch1Emp.ID, resp.EmployeeID)
	assert.Equal(t, 7, resp.SeatNumber)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.False(t, resp.IsExtra)
}

func TestExecute_PersistsExtraClassification(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	// Вторник утром: понедельник уже прошел, среда - не день батча 2
	// на неделе 1, extra-окно на среду открывается во вторник в 15:00
	e := newEnv(t, time.Date(2024, 1, 2, 16, 0, 0, 0, loc))

	resp, err := e.useCase.Execute(context.Background(), &Request{
		EmployeeID: e.batch2Emp.ID,
		Date:       day(e.loc, 3),
		SeatNumber: 3,
	})

	require.NoError(t, err)
	assert.True(t, resp.IsExtra)

	stored, err := e.store.FindConfirmedSeat(context.Background(), day(e.loc, 3), 3)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.IsExtra)
}

func TestExecute_ValidationErrors(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	e := newEnv(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing employee", &Request{Date: day(e.loc, 1), SeatNumber: 1}},
		{"missing date", &Request{EmployeeID: e.batch1Emp.ID, SeatNumber: 1}},
		{"seat below range", &Request{EmployeeID: e.batch1Emp.ID, Date: day(e.loc, 1), SeatNumber: 0}},
		{"seat above range", &Request{EmployeeID: e.batch1Emp.ID, Date: day(e.loc, 1), SeatNumber: 51}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.useCase.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_UnknownEmployee(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	e := newEnv(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	_, err := e.useCase.Execute(context.Background(), &Request{
		EmployeeID: uuid.New(),
		Date:       day(e.loc, 1),
		SeatNumber: 1,
	})

	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_DenyReasonsMapToErrors(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")

	tests := []struct {
		name    string
		now     time.Time
		date    int
		batch1  bool
		wantErr error
	}{
		{"past date", time.Date(2024, 1, 10, 10, 0, 0, 0, loc), 9, true, ErrPastDate},
		{"beyond horizon", time.Date(2024, 1, 1, 10, 0, 0, 0, loc), 21, true, ErrBeyondHorizon},
		{"cutoff passed", time.Date(2024, 1, 1, 15, 0, 0, 0, loc), 1, true, ErrCutoffPassed},
		{"extra window not open", time.Date(2024, 1, 1, 10, 0, 0, 0, loc), 4, true, ErrWindowNotOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t, tt.now)
			emp := e.batch1Emp
			if !tt.batch1 {
				emp = e.batch2Emp
			}

			_, err := e.useCase.Execute(context.Background(), &Request{
				EmployeeID: emp.ID,
				Date:       day(e.loc, tt.date),
				SeatNumber: 1,
			})

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_SeatTaken(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	e := newEnv(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	_, err := e.useCase.Execute(context.Background(), &Request{
		EmployeeID: e.batch1Emp.ID,
		Date:       day(e.loc, 1),
		SeatNumber: 5,
	})
	require.NoError(t, err)

	// Повторный запрос на то же место: проверка занятости места
	// срабатывает раньше проверки второй брони сотрудника
	_, err = e.useCase.Execute(context.Background(), &Request{
		EmployeeID: e.batch1Emp.ID,
		Date:       day(e.loc, 1),
		SeatNumber: 5,
	})

	assert.ErrorIs(t, err, ErrSeatTaken)
}

func TestExecute_EmployeeAlreadyBooked(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	e := newEnv(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	_, err := e.useCase.Execute(context.Background(), &Request{
		EmployeeID: e.batch1Emp.ID,
		Date:       day(e.loc, 1),
		SeatNumber: 5,
	})
	require.NoError(t, err)

	// Тот же сотрудник пробует занять второе место на ту же дату
	_, err = e.useCase.Execute(context.Background(), &Request{
		EmployeeID: e.batch1Emp.ID,
		Date:       day(e.loc, 1),
		SeatNumber: 6,
	})

	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestExecute_ConcurrentRequestsForSameSeat(t *testing.T) {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	e := newEnv(t, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	const workers = 32

	// Каждому конкуренту - свой сотрудник, чтобы сработал только
	// инвариант занятости места
	employees := &fakeEmployeeRepo{employees: make(map[uuid.UUID]*domain.Employee)}
	ids := make([]uuid.UUID, workers)
	for i := range ids {
		emp := &domain.Employee{ID: uuid.New(), Batch: domain.Batch1, Role: domain.RoleUser}
		employees.employees[emp.ID] = emp
		ids[i] = emp.ID
	}

	calendar := rotation.NewCalendar(loc, time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
	cutoff, _ := types.NewTimeStringFromString("15:00")
	evaluator := eligibility.NewEvaluator(calendar, 14, cutoff, cutoff)

	uc := NewUseCase(e.store, employees, evaluator, fakeTxManager{}, 50, nopLogger{}).
		WithTimeProvider(fixedTime{t: time.Date(2024, 1, 1, 10, 0, 0, 0, loc)})

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), &Request{
				EmployeeID: ids[i],
				Date:       day(loc, 1),
				SeatNumber: 13,
			})
		}(i)
	}
	wg.Wait()

	var succeeded, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSeatTaken):
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one concurrent request must win the seat")
	assert.Equal(t, workers-1, rejected)
}
