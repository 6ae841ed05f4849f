package book_seat

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, totalSeats int) error {
	if req.EmployeeID == uuid.Nil {
		return fmt.Errorf("%w: employeeID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.SeatNumber < 1 || req.SeatNumber > totalSeats {
		return fmt.Errorf("%w: seatNumber must be in range [1, %d]", ErrInvalidInput, totalSeats)
	}

	return nil
}

// denyError маппит причину отказа evaluator'а в sentinel ошибку usecase
// Причина отказа пробрасывается наружу без переинтерпретации
func denyError(reason domain.DenyReason) error {
	switch reason {
	case domain.ReasonPastDate:
		return ErrPastDate
	case domain.ReasonBeyondHorizon:
		return ErrBeyondHorizon
	case domain.ReasonCutoffPassed:
		return ErrCutoffPassed
	case domain.ReasonWindowNotOpen:
		return ErrWindowNotOpen
	default:
		return fmt.Errorf("%w: unknown deny reason %q", ErrInternal, reason)
	}
}
