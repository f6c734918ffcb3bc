package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Request модель запроса на отмену подтверждённого бронирования
type Request struct {
	BookingID uuid.UUID   // ID бронирования
	ActorID   int64       // Аутентифицированный участник
	ActorRole domain.Role // Роль участника: client или coach
	Reason    *string     // Причина отмены (опционально)
}
