package book_seat

import (
	"errors"
	"net/http"
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/api/handlers"
	"github.com/wissen-infra/seat-booking-service/internal/api/middleware"
	bookSeat "github.com/wissen-infra/seat-booking-service/internal/usecase/book_seat"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidSeat        = "некорректный номер места"
	msgEmployeeNotFound   = "сотрудник не найден"
	msgPastDate           = "нельзя бронировать на прошедшую дату"
	msgBeyondHorizon      = "бронирование доступно максимум на две недели вперед"
	msgCutoffPassed       = "окно регулярного бронирования на сегодня закрыто"
	msgWindowNotOpen      = "extra-бронирование откроется в 15:00 накануне"
	msgSeatTaken          = "это место на выбранную дату уже занято"
	msgAlreadyBooked      = "у вас уже есть бронирование на эту дату"
)

type Handler struct {
	useCase BookSeatUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase BookSeatUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.EmployeeID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "отсутствует аутентификация")
		return
	}

	var req BookSeatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(employeeID, h.loc)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSeat.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: employee=%s, seat=%d", employeeID, req.SeatNumber)
			handlers.RespondBadRequest(w, msgInvalidSeat)

		case errors.Is(err, bookSeat.ErrEmployeeNotFound):
			h.logger.Warn("POST /bookings - Employee not found: %s", employeeID)
			handlers.RespondNotFound(w, msgEmployeeNotFound)

		case errors.Is(err, bookSeat.ErrPastDate):
			h.logger.Warn("POST /bookings - Past date: employee=%s, date=%s", employeeID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, bookSeat.ErrBeyondHorizon):
			h.logger.Warn("POST /bookings - Beyond horizon: employee=%s, date=%s", employeeID, req.Date)
			handlers.RespondBadRequest(w, msgBeyondHorizon)

		case errors.Is(err, bookSeat.ErrCutoffPassed):
			h.logger.Warn("POST /bookings - Cutoff passed: employee=%s, date=%s", employeeID, req.Date)
			handlers.RespondBadRequest(w, msgCutoffPassed)

		case errors.Is(err, bookSeat.ErrWindowNotOpen):
			h.logger.Warn("POST /bookings - Extra window not open: employee=%s, date=%s", employeeID, req.Date)
			handlers.RespondBadRequest(w, msgWindowNotOpen)

		case errors.Is(err, bookSeat.ErrSeatTaken):
			h.logger.Warn("POST /bookings - Seat taken: employee=%s, date=%s, seat=%d",
				employeeID, req.Date, req.SeatNumber)
			handlers.RespondConflict(w, msgSeatTaken)

		case errors.Is(err, bookSeat.ErrAlreadyBooked):
			h.logger.Warn("POST /bookings - Already booked: employee=%s, date=%s", employeeID, req.Date)
			handlers.RespondConflict(w, msgAlreadyBooked)

		default:
			h.logger.Error("POST /bookings - Failed to book seat: employee=%s, date=%s, seat=%d, error=%v",
				employeeID, req.Date, req.SeatNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Seat booked: booking=%s, employee=%s, date=%s, seat=%d",
		result.ID, employeeID, req.Date, req.SeatNumber)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
