package confirm_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("confirm_booking: booking not found")

	// ErrNotParticipant возвращается, когда актор не числится клиентом
	// этого бронирования
	ErrNotParticipant = errors.New("confirm_booking: actor is not a listed client")

	// ErrInvalidTransition возвращается, когда бронирование не ожидает
	// подтверждения клиентом
	ErrInvalidTransition = errors.New("confirm_booking: booking is not awaiting client confirmation")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_booking: internal error")
)
