package get_participant_bookings

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
)

type BookingService interface {
	GetParticipantBookings(ctx context.Context, req *models.GetParticipantBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
