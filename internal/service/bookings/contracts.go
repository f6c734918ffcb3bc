package bookings

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований (read-side)
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByParticipant(ctx context.Context, participantID int64, role domain.Role, status *domain.BookingStatus) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
