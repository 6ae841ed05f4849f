package check_eligibility

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/service/schedule/models"
)

type ScheduleService interface {
	CheckEligibility(ctx context.Context, employeeID uuid.UUID, date time.Time) (*models.DecisionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
