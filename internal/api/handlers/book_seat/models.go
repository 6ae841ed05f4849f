package book_seat

import (
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	bookSeat "github.com/wissen-infra/seat-booking-service/internal/usecase/book_seat"
)

// BookSeatRequest HTTP request model
type BookSeatRequest struct {
	Date       string `json:"date"` // "2026-08-28"
	SeatNumber int    `json:"seatNumber"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID uuid.UUID `json:"employeeId"`
	Date       string    `json:"date"`
	SeatNumber int       `json:"seatNumber"`
	Status     string    `json:"status"`
	IsExtra    bool      `json:"isExtra"`
	CreatedAt  string    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата парсится в часовом поясе политики
func (r *BookSeatRequest) ToUseCaseRequest(employeeID uuid.UUID, loc *time.Location) (*bookSeat.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, err
	}

	return &bookSeat.Request{
		EmployeeID: employeeID,
		Date:       date,
		SeatNumber: r.SeatNumber,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSeat.Response) *BookingResponse {
	return &BookingResponse{
		ID:         resp.ID,
		EmployeeID: resp.EmployeeID,
		Date:       resp.Date.Format(domain.DateFormat),
		SeatNumber: resp.SeatNumber,
		Status:     resp.Status,
		IsExtra:    resp.IsExtra,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
	}
}
