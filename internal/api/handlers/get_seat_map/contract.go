package get_seat_map

import (
	"context"
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	SeatMap(ctx context.Context, date time.Time) (*models.SeatMapResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
