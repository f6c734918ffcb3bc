package confirm_booking

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	confirmBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/confirm_booking"
)

type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, req *confirmBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
