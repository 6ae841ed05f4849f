package get_day_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/api/handlers"
	"github.com/wissen-infra/seat-booking-service/internal/api/middleware"
	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/internal/service/bookings"
	"github.com/wissen-infra/seat-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden   = "доступ запрещен"
)

type Handler struct {
	service BookingService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service BookingService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings?date=YYYY-MM-DD&includeCancelled=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует аутентификация")
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("date"), h.loc)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetDayBookingsRequest{
		RequesterID:      requesterID,
		Date:             date,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}

	result, err := h.service.GetDayBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /admin/bookings - Access denied: requester=%s", requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /admin/bookings - Failed: date=%s, error=%v",
				date.Format(domain.DateFormat), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
