package get_day_bookings

import (
	"context"

	"github.com/wissen-infra/seat-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetDayBookings(ctx context.Context, req *models.GetDayBookingsRequest) (*models.DayBookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
