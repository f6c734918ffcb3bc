package decline_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// UseCase use case отклонения бронирования клиентом.
//
// Отклонение со стороны клиента - решение "все или ничего": в групповом
// бронировании отказ любого одного клиента переводит всю заявку в
// declined_by_client. Групповое занятие - единое событие в календаре,
// частично отклонить его нельзя.
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

// Execute выполняет отклонение бронирования клиентом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("DeclineBooking: booking=%s, client=%d", req.BookingID, req.ClientID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeclineBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("DeclineBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("DeclineBooking: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
		}

		if !booking.HasClient(req.ClientID) {
			uc.logger.Warn("DeclineBooking: client=%d is not listed on booking=%s", req.ClientID, req.BookingID)
			return ErrNotParticipant
		}
		if !booking.CanBeDeclinedByClient() {
			uc.logger.Warn("DeclineBooking: booking=%s in status=%s cannot be declined", req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		now := uc.timeProvider.Now()
		delta := domain.TransitionDelta{
			Status:              ptr.Ptr(domain.StatusDeclinedByClient),
			ClientDeclineReason: &req.Reason,
			DeclinedAt:          &now,
		}

		if err := uc.bookingRepo.Transition(txCtx, req.BookingID, delta); err != nil {
			uc.logger.Error("DeclineBooking: failed to apply transition: %v", err)
			return fmt.Errorf("%w: failed to apply transition: %w", ErrInternal, err)
		}
		booking.Status = domain.StatusDeclinedByClient
		booking.ClientDeclineReason = &req.Reason
		booking.DeclinedAt = &now

		// Уведомления тренерам - в той же транзакции, отправка позже
		if err := uc.outboxRepo.Create(txCtx, booking.DeclinedNotifications(req.Reason)); err != nil {
			uc.logger.Error("DeclineBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeclineBooking: booking=%s declined by client=%d", req.BookingID, req.ClientID)
	return result, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}
