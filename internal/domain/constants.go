package domain

// Business validation constants
const (
	MaxNotesLength    = 500
	MaxReasonLength   = 500
	MaxLocationLength = 255
	MaxParticipants   = 20
)

// Slot granularity used by the duration calculator
const (
	SlotMinutes = 30
	SlotHours   = 0.5
)

// TerminalStatuses список статусов, из которых нет дальнейших переходов
// (оплаченный confirmed проверяется отдельно через IsTerminal)
var TerminalStatuses = []BookingStatus{
	StatusDeclinedByClient,
	StatusCancelledByClient,
	StatusCancelledByCoach,
}

// AllStatuses список всех допустимых статусов бронирования
// Используется при валидации статуса из внешнего ввода
var AllStatuses = []BookingStatus{
	StatusRequested,
	StatusPartiallyAccepted,
	StatusPendingAcceptance,
	StatusPartiallyConfirmed,
	StatusConfirmed,
	StatusDeclinedByClient,
	StatusCancelledByClient,
	StatusCancelledByCoach,
}
