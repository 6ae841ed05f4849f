package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSeatTaken возвращается, когда на эту дату место уже забронировано
	ErrSeatTaken = errors.New("booking.repository: seat already taken for this date")

	// ErrEmployeeAlreadyBooked возвращается, когда у сотрудника уже есть
	// активное бронирование на эту дату
	ErrEmployeeAlreadyBooked = errors.New("booking.repository: employee already has a booking for this date")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
