package acknowledge_payment

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	acknowledgePayment "github.com/m04kA/SMC-CoachingService/internal/usecase/acknowledge_payment"
)

type AcknowledgePaymentUseCase interface {
	Execute(ctx context.Context, req *acknowledgePayment.Request) (*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
