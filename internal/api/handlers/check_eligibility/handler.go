package check_eligibility

import (
	"errors"
	"net/http"
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/api/handlers"
	"github.com/wissen-infra/seat-booking-service/internal/api/middleware"
	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/internal/service/schedule"
)

const (
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgEmployeeNotFound = "сотрудник не найден"
)

type Handler struct {
	service ScheduleService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service ScheduleService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/eligibility?date=YYYY-MM-DD
// Возвращает решение для батча аутентифицированного сотрудника
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует аутентификация")
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), h.loc)
	if err != nil {
		h.logger.Warn("GET /eligibility - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.CheckEligibility(r.Context(), employeeID, date)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrEmployeeNotFound):
			h.logger.Warn("GET /eligibility - Employee not found: %s", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		default:
			h.logger.Error("GET /eligibility - Failed: employee=%s, error=%v", employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
