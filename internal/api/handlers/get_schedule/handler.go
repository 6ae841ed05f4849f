package get_schedule

import (
	"net/http"
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/api/handlers"
	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

const msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"

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

// Handle GET /api/v1/schedule?date=YYYY-MM-DD
// Без параметра date возвращает ротацию на сегодня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := time.Now().In(h.loc)

	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, raw, h.loc)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		date = parsed
	}

	handlers.RespondJSON(w, http.StatusOK, h.service.DaySchedule(date))
}
