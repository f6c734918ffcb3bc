package decline_booking

import "github.com/google/uuid"

// Request модель запроса на отклонение бронирования клиентом
type Request struct {
	BookingID uuid.UUID // ID бронирования
	ClientID  int64     // Аутентифицированный клиент
	Reason    string    // Причина отклонения
}
