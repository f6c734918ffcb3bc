package acknowledge_payment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Request модель запроса на отметку оплаты бронирования
type Request struct {
	BookingID uuid.UUID   // ID бронирования
	ActorID   int64       // Аутентифицированный участник
	ActorRole domain.Role // Роль участника: client или coach
}
