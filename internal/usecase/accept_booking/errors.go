package accept_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("accept_booking: booking not found")

	// ErrNotParticipant возвращается, когда актор не числится тренером
	// этого бронирования
	ErrNotParticipant = errors.New("accept_booking: actor is not a listed coach")

	// ErrInvalidTransition возвращается, когда бронирование уже не ожидает
	// принятия тренером
	ErrInvalidTransition = errors.New("accept_booking: booking is not awaiting coach acceptance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("accept_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_booking: internal error")
)
