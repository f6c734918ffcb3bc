package decline_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("decline_booking: booking not found")

	// ErrNotParticipant возвращается, когда актор не числится клиентом
	// этого бронирования
	ErrNotParticipant = errors.New("decline_booking: actor is not a listed client")

	// ErrInvalidTransition возвращается, когда бронирование нельзя отклонить
	// из текущего статуса
	ErrInvalidTransition = errors.New("decline_booking: booking cannot be declined in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("decline_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("decline_booking: internal error")
)
