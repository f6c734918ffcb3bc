package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	// (пустые списки участников, дубликаты, слишком длинные тексты)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidTimeRange возвращается, когда startAt >= endAt
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrStartInPast возвращается, когда занятие начинается в прошлом
	ErrStartInPast = errors.New("create_booking: startAt is in the past")

	// ErrNotParticipant возвращается, когда актор не входит в список клиентов
	ErrNotParticipant = errors.New("create_booking: actor is not a listed client")

	// ErrWrongRole возвращается, когда бронирование создает не клиент
	ErrWrongRole = errors.New("create_booking: only a client can create a booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
