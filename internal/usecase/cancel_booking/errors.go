package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrNotParticipant возвращается, когда актор не является участником
	// бронирования в заявленной роли
	ErrNotParticipant = errors.New("cancel_booking: actor is not a participant of this booking")

	// ErrAlreadyPaid возвращается при попытке отменить оплаченное бронирование
	ErrAlreadyPaid = errors.New("cancel_booking: paid booking cannot be cancelled")

	// ErrInvalidTransition возвращается, когда бронирование нельзя отменить
	// из текущего статуса
	ErrInvalidTransition = errors.New("cancel_booking: booking cannot be cancelled in its current status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
