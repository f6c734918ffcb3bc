package accept_booking

import "github.com/google/uuid"

// Request модель запроса на принятие бронирования тренером
type Request struct {
	BookingID uuid.UUID // ID бронирования
	CoachID   int64     // Аутентифицированный тренер
	RateUSD   *float64  // Ставка за час (опционально; без ставки стоимость "неизвестна")
	CoachNote *string   // Заметка тренера (опционально)
}
