package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetEmployeeBookingsRequest запрос истории бронирований сотрудника
type GetEmployeeBookingsRequest struct {
	EmployeeID  uuid.UUID // чьи бронирования запрашиваются
	RequesterID uuid.UUID // кто запрашивает (сам сотрудник или админ)
	Status      *string   // фильтр по статусу (опционально)
}

// GetDayBookingsRequest запрос аудита бронирований на дату
type GetDayBookingsRequest struct {
	RequesterID      uuid.UUID
	Date             time.Time
	IncludeCancelled bool
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	EmployeeID  uuid.UUID `json:"employeeId"`
	Date        string    `json:"date"` // "2026-08-28"
	SeatNumber  int       `json:"seatNumber"`
	Status      string    `json:"status"`
	IsExtra     bool      `json:"isExtra"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// DayBookingResponse бронирование с данными сотрудника для аудита дня
type DayBookingResponse struct {
	BookingResponse
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail"`
	EmployeeBatch int    `json:"employeeBatch"`
}

// DayBookingListResponse ответ со списком бронирований дня
type DayBookingListResponse struct {
	Date     string               `json:"date"`
	Bookings []DayBookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:         b.ID,
		EmployeeID: b.EmployeeID,
		Date:       b.Date.Format(domain.DateFormat),
		SeatNumber: b.SeatNumber,
		Status:     string(b.Status),
		IsExtra:    b.IsExtra,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainDayBookings конвертирует аудит дня в DTO
func FromDomainDayBookings(date time.Time, bookings []*domain.DayBooking) *DayBookingListResponse {
	resp := &DayBookingListResponse{
		Date:     date.Format(domain.DateFormat),
		Bookings: make([]DayBookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		base := FromDomainBooking(&b.Booking)
		if base == nil {
			continue
		}
		resp.Bookings = append(resp.Bookings, DayBookingResponse{
			BookingResponse: *base,
			EmployeeName:    b.EmployeeName,
			EmployeeEmail:   b.EmployeeEmail,
			EmployeeBatch:   int(b.EmployeeBatch),
		})
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
