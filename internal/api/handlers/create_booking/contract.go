package create_booking

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
