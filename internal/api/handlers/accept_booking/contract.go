package accept_booking

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	acceptBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/accept_booking"
)

type AcceptBookingUseCase interface {
	Execute(ctx context.Context, req *acceptBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
