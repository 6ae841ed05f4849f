package book_seat

import (
	"context"

	bookSeat "github.com/wissen-infra/seat-booking-service/internal/usecase/book_seat"
)

type BookSeatUseCase interface {
	Execute(ctx context.Context, req *bookSeat.Request) (*bookSeat.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
