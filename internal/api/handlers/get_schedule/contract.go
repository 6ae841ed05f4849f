package get_schedule

import (
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	DaySchedule(date time.Time) *models.DayScheduleResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
