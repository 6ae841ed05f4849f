package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/internal/eligibility"
	employeeRepo "github.com/wissen-infra/seat-booking-service/internal/infra/storage/employee"
	"github.com/wissen-infra/seat-booking-service/internal/rotation"
	"github.com/wissen-infra/seat-booking-service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeBookingRepo struct {
	confirmed []*domain.Booking
}

func (r *fakeBookingRepo) GetConfirmedByDate(_ context.Context, _ time.Time) ([]*domain.Booking, error) {
	return r.confirmed, nil
}

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

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time {
	return f.t
}

func newService(t *testing.T, bookings *fakeBookingRepo, employees *fakeEmployeeRepo, now time.Time) (*Service, *time.Location) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	calendar := rotation.NewCalendar(loc, time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
	cutoff, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)

	evaluator := eligibility.NewEvaluator(calendar, 14, cutoff, cutoff)

	svc := NewService(bookings, employees, evaluator, calendar, 50, nopLogger{}).
		WithTimeProvider(fixedTime{t: now})

	return svc, loc
}

func TestCheckEligibility(t *testing.T) {
	emp := &domain.Employee{ID: uuid.New(), Batch: domain.Batch1, Role: domain.RoleUser}
	employees := &fakeEmployeeRepo{employees: map[uuid.UUID]*domain.Employee{emp.ID: emp}}

	loc, _ := time.LoadLocation("Asia/Kolkata")
	svc, _ := newService(t, &fakeBookingRepo{}, employees, time.Date(2024, 1, 1, 10, 0, 0, 0, loc))

	t.Run("regular day allowed", func(t *testing.T) {
		resp, err := svc.CheckEligibility(context.Background(), emp.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
		require.NoError(t, err)
		assert.True(t, resp.Allowed)
		assert.False(t, resp.IsExtra)
		assert.Equal(t, 1, resp.Batch)
	})

	t.Run("deny carries reason", func(t *testing.T) {
		resp, err := svc.CheckEligibility(context.Background(), emp.ID, time.Date(2024, 1, 21, 0, 0, 0, 0, loc))
		require.NoError(t, err)
		assert.False(t, resp.Allowed)
		assert.Equal(t, string(domain.ReasonBeyondHorizon), resp.Reason)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := svc.CheckEligibility(context.Background(), uuid.New(), time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
	})
}

func TestDaySchedule(t *testing.T) {
	svc, loc := newService(t, &fakeBookingRepo{}, &fakeEmployeeRepo{}, time.Now())

	t.Run("week 1", func(t *testing.T) {
		resp := svc.DaySchedule(time.Date(2024, 1, 3, 0, 0, 0, 0, loc))

		assert.Equal(t, 1, resp.RotationWeek)
		require.Len(t, resp.Batches, 2)
		assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday"}, resp.Batches[0].Weekdays)
		assert.Equal(t, []string{"Thursday", "Friday"}, resp.Batches[1].Weekdays)
	})

	t.Run("week 2 swaps batches", func(t *testing.T) {
		resp := svc.DaySchedule(time.Date(2024, 1, 10, 0, 0, 0, 0, loc))

		assert.Equal(t, 2, resp.RotationWeek)
		assert.Equal(t, []string{"Thursday", "Friday"}, resp.Batches[0].Weekdays)
		assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday"}, resp.Batches[1].Weekdays)
	})
}

func TestSeatMap(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bookings := &fakeBookingRepo{confirmed: []*domain.Booking{
		{ID: uuid.New(), SeatNumber: 3, Status: domain.StatusConfirmed, Date: date},
		{ID: uuid.New(), SeatNumber: 17, Status: domain.StatusConfirmed, Date: date},
	}}

	svc, loc := newService(t, bookings, &fakeEmployeeRepo{}, time.Now())

	resp, err := svc.SeatMap(context.Background(), time.Date(2024, 1, 1, 0, 0, 0, 0, loc))
	require.NoError(t, err)

	assert.Equal(t, 50, resp.TotalSeats)
	assert.Equal(t, []int{3, 17}, resp.BookedSeats)
	assert.Equal(t, 48, resp.FreeSeats)
}
