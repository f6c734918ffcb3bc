package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	ActorID   int64       // Аутентифицированный актор (должен быть клиентом)
	ActorRole domain.Role // Роль актора из AuthContext
	ClientIDs []int64     // Клиенты бронирования (включая актора)
	CoachIDs  []int64     // Тренеры бронирования
	StartAt   time.Time   // Начало занятия
	EndAt     time.Time   // Конец занятия
	Location  *string     // Место проведения (опционально)
	Notes     *string     // Заметки клиента (опционально)
}
