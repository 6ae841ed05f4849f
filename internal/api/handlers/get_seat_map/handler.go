package get_seat_map

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

// Handle GET /api/v1/seats?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), h.loc)
	if err != nil {
		h.logger.Warn("GET /seats - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.SeatMap(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /seats - Failed: date=%s, error=%v", date.Format(domain.DateFormat), err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
