package models

import (
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

// DecisionResponse результат проверки права на бронирование
type DecisionResponse struct {
	Date    string `json:"date"`
	Batch   int    `json:"batch"`
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	IsExtra bool   `json:"isExtra"`
}

// FromDomainDecision конвертирует решение evaluator'а в DTO
func FromDomainDecision(date time.Time, batch domain.Batch, d domain.Decision) *DecisionResponse {
	return &DecisionResponse{
		Date:    date.Format(domain.DateFormat),
		Batch:   int(batch),
		Allowed: d.Allowed,
		Reason:  string(d.Reason),
		IsExtra: d.IsExtra,
	}
}

// BatchScheduleResponse закрепленные дни недели одного батча
type BatchScheduleResponse struct {
	Batch    int      `json:"batch"`
	Weekdays []string `json:"weekdays"`
}

// DayScheduleResponse активная ротация на дату
type DayScheduleResponse struct {
	Date         string                  `json:"date"`
	RotationWeek int                     `json:"rotationWeek"`
	Batches      []BatchScheduleResponse `json:"batches"`
}

// SeatMapResponse карта мест на дату
type SeatMapResponse struct {
	Date        string `json:"date"`
	TotalSeats  int    `json:"totalSeats"`
	BookedSeats []int  `json:"bookedSeats"`
	FreeSeats   int    `json:"freeSeats"`
}

// WeekdayNames конвертирует дни недели в строковые имена
func WeekdayNames(days []time.Weekday) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, d.String())
	}
	return names
}
