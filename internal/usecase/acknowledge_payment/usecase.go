package acknowledge_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// UseCase use case отметки оплаты подтверждённого бронирования.
//
// После оплаты бронирование становится терминальным: его нельзя отменить
// и никакие дальнейшие переходы невозможны. Повторная отметка уже
// оплаченного бронирования - no-op, а не ошибка.
type UseCase struct {
	bookingRepo BookingRepository
	outboxRepo  OutboxRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute отмечает бронирование как оплаченное
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("AcknowledgePayment: booking=%s, actor=%d, role=%s", req.BookingID, req.ActorID, req.ActorRole)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcknowledgePayment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("AcknowledgePayment: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("AcknowledgePayment: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
		}

		if !booking.IsParticipant(req.ActorID, req.ActorRole) {
			uc.logger.Warn("AcknowledgePayment: actor=%d (%s) is not listed on booking=%s", req.ActorID, req.ActorRole, req.BookingID)
			return ErrNotParticipant
		}
		if booking.Status != domain.StatusConfirmed {
			uc.logger.Warn("AcknowledgePayment: booking=%s in status=%s is not payable", req.BookingID, booking.Status)
			return ErrNotConfirmed
		}

		// Повторный запрос после оплаты - идемпотентный успех
		if booking.PaymentStatus == domain.PaymentPaid {
			uc.logger.Info("AcknowledgePayment: booking=%s is already paid, nothing to do", req.BookingID)
			result = booking
			return nil
		}

		delta := domain.TransitionDelta{
			PaymentStatus: ptr.Ptr(domain.PaymentPaid),
		}

		if err := uc.bookingRepo.Transition(txCtx, req.BookingID, delta); err != nil {
			uc.logger.Error("AcknowledgePayment: failed to apply transition: %v", err)
			return fmt.Errorf("%w: failed to apply transition: %w", ErrInternal, err)
		}
		booking.PaymentStatus = domain.PaymentPaid

		// Уведомления тренерам - в той же транзакции, отправка позже
		if err := uc.outboxRepo.Create(txCtx, booking.PaymentNotifications()); err != nil {
			uc.logger.Error("AcknowledgePayment: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcknowledgePayment: booking=%s marked as paid", req.BookingID)
	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}
	if req.ActorRole != domain.RoleClient && req.ActorRole != domain.RoleCoach {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.ActorRole)
	}
	return nil
}
