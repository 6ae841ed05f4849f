package book_seat

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на бронирование места
type Request struct {
	EmployeeID uuid.UUID // ID сотрудника (из заголовка аутентификации)
	Date       time.Time // Целевая дата (без времени)
	SeatNumber int       // Номер места в диапазоне [1, TotalSeats]
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID // ID созданного бронирования
	EmployeeID uuid.UUID // ID сотрудника
	Date       time.Time // Дата бронирования
	SeatNumber int       // Номер места
	Status     string    // Статус бронирования
	IsExtra    bool      // Классификация слота, зафиксированная при создании
	CreatedAt  time.Time // Время создания
}
