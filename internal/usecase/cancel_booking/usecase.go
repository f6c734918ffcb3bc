package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// UseCase use case отмены подтверждённого бронирования.
//
// Отменить можно только confirmed и только до оплаты. Итоговый статус
// зависит от роли инициатора: клиент переводит бронирование в cancelled,
// тренер - в cancelled_by_coach. Противоположная сторона получает
// уведомление об отмене.
type UseCase struct {
	bookingRepo  BookingRepository
	outboxRepo   OutboxRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет отмену бронирования участником
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CancelBooking: booking=%s, actor=%d, role=%s", req.BookingID, req.ActorID, req.ActorRole)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
		}

		if !booking.IsParticipant(req.ActorID, req.ActorRole) {
			uc.logger.Warn("CancelBooking: actor=%d (%s) is not listed on booking=%s", req.ActorID, req.ActorRole, req.BookingID)
			return ErrNotParticipant
		}
		if booking.PaymentStatus == domain.PaymentPaid {
			uc.logger.Warn("CancelBooking: booking=%s is already paid", req.BookingID)
			return ErrAlreadyPaid
		}
		if !booking.CanBeCancelled() {
			uc.logger.Warn("CancelBooking: booking=%s in status=%s cannot be cancelled", req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		newStatus := domain.StatusCancelledByClient
		if req.ActorRole == domain.RoleCoach {
			newStatus = domain.StatusCancelledByCoach
		}

		now := uc.timeProvider.Now()
		delta := domain.TransitionDelta{
			Status:             ptr.Ptr(newStatus),
			CancellationReason: req.Reason,
			CancelledAt:        &now,
		}

		if err := uc.bookingRepo.Transition(txCtx, req.BookingID, delta); err != nil {
			uc.logger.Error("CancelBooking: failed to apply transition: %v", err)
			return fmt.Errorf("%w: failed to apply transition: %w", ErrInternal, err)
		}
		booking.Status = newStatus
		booking.CancellationReason = req.Reason
		booking.CancelledAt = &now

		// Уведомления противоположной стороне - в той же транзакции, отправка позже
		if err := uc.outboxRepo.Create(txCtx, booking.CancelledNotifications(req.ActorRole)); err != nil {
			uc.logger.Error("CancelBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking=%s cancelled by %s=%d", req.BookingID, req.ActorRole, req.ActorID)
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
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}
