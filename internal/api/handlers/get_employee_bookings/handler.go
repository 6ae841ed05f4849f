package get_employee_bookings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wissen-infra/seat-booking-service/internal/api/handlers"
	"github.com/wissen-infra/seat-booking-service/internal/api/middleware"
	"github.com/wissen-infra/seat-booking-service/internal/service/bookings"
	"github.com/wissen-infra/seat-booking-service/internal/service/bookings/models"
)

const (
	msgInvalidEmployeeID = "некорректный ID сотрудника"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/employees/{employeeId}/bookings?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует аутентификация")
		return
	}

	vars := mux.Vars(r)
	employeeID, err := uuid.Parse(vars["employeeId"])
	if err != nil {
		h.logger.Warn("GET /employees/{id}/bookings - Invalid employee ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	req := &models.GetEmployeeBookingsRequest{
		EmployeeID:  employeeID,
		RequesterID: requesterID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetEmployeeBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /employees/{id}/bookings - Access denied: employee=%s, requester=%s",
				employeeID, requesterID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /employees/{id}/bookings - Invalid status: employee=%s", employeeID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /employees/{id}/bookings - Failed: employee=%s, error=%v",
				employeeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
