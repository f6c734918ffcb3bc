package acknowledge_payment

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("acknowledge_payment: booking not found")

	// ErrNotParticipant возвращается, когда актор не является участником
	// бронирования в заявленной роли
	ErrNotParticipant = errors.New("acknowledge_payment: actor is not a participant of this booking")

	// ErrNotConfirmed возвращается, когда бронирование вне статуса confirmed
	ErrNotConfirmed = errors.New("acknowledge_payment: booking is not confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("acknowledge_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("acknowledge_payment: internal error")
)
