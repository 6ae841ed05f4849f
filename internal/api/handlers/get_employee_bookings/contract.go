package get_employee_bookings

import (
	"context"

	"github.com/wissen-infra/seat-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetEmployeeBookings(ctx context.Context, req *models.GetEmployeeBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
