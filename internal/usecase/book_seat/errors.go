package book_seat

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = errors.New("book_seat: employee not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_seat: invalid input data")

	// ErrPastDate возвращается при попытке бронирования на прошедшую дату
	ErrPastDate = errors.New("book_seat: cannot book for past dates")

	// ErrBeyondHorizon возвращается, когда дата дальше горизонта бронирования
	ErrBeyondHorizon = errors.New("book_seat: date exceeds advance-booking horizon")

	// ErrCutoffPassed возвращается, когда окно регулярного бронирования
	// на сегодня уже закрыто
	ErrCutoffPassed = errors.New("book_seat: regular-booking cutoff passed")

	// ErrWindowNotOpen возвращается, когда окно extra-бронирования
	// еще не открылось
	ErrWindowNotOpen = errors.New("book_seat: extra-booking window not yet open")

	// ErrSeatTaken возвращается, когда место на эту дату уже занято
	ErrSeatTaken = errors.New("book_seat: seat already taken")

	// ErrAlreadyBooked возвращается, когда у сотрудника уже есть
	// активное бронирование на эту дату
	ErrAlreadyBooked = errors.New("book_seat: employee already has a booking for this date")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_seat: internal error")
)
