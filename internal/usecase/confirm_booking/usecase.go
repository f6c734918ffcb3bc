package confirm_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// UseCase use case подтверждения бронирования клиентом.
//
// Для обычного бронирования подтверждение завершает переговоры: заявка
// становится confirmed. Для группового бронирования подтверждения
// агрегируются по голосам клиентов: пока подтвердили не все, заявка
// остается в partially_confirmed.
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

// Execute выполняет подтверждение бронирования клиентом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("ConfirmBooking: booking=%s, client=%d", req.BookingID, req.ClientID)

	if req.BookingID == uuid.Nil {
		return nil, fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("ConfirmBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("ConfirmBooking: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
		}

		if !booking.HasClient(req.ClientID) {
			uc.logger.Warn("ConfirmBooking: client=%d is not listed on booking=%s", req.ClientID, req.BookingID)
			return ErrNotParticipant
		}
		if !booking.CanBeConfirmedByClient() {
			uc.logger.Warn("ConfirmBooking: booking=%s in status=%s cannot be confirmed", req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		now := uc.timeProvider.Now()

		// Фиксируем голос клиента (field-level merge по ключу участника)
		if err := uc.bookingRepo.MergeClientVote(txCtx, req.BookingID, req.ClientID, now); err != nil {
			if errors.Is(err, bookingRepo.ErrVoteNotFound) {
				return ErrNotParticipant
			}
			uc.logger.Error("ConfirmBooking: failed to merge client vote: %v", err)
			return fmt.Errorf("%w: failed to merge client vote: %w", ErrInternal, err)
		}
		mergeLocalClientVote(booking, req.ClientID, now)

		// Агрегируем статус: для группы - по голосам всех клиентов
		var newStatus domain.BookingStatus
		if booking.IsGroup() && !booking.AllClientsConfirmed() {
			newStatus = domain.StatusPartiallyConfirmed
		} else {
			newStatus = domain.StatusConfirmed
		}

		delta := domain.TransitionDelta{Status: ptr.Ptr(newStatus)}
		// confirmedAt выставляется ровно один раз - при входе в confirmed
		if newStatus == domain.StatusConfirmed && booking.ConfirmedAt == nil {
			delta.ConfirmedAt = &now
		}

		if err := uc.bookingRepo.Transition(txCtx, req.BookingID, delta); err != nil {
			uc.logger.Error("ConfirmBooking: failed to apply transition: %v", err)
			return fmt.Errorf("%w: failed to apply transition: %w", ErrInternal, err)
		}
		booking.Status = newStatus
		if delta.ConfirmedAt != nil {
			booking.ConfirmedAt = delta.ConfirmedAt
		}

		// Уведомления тренерам - в той же транзакции, отправка позже
		if err := uc.outboxRepo.Create(txCtx, booking.ConfirmedNotifications()); err != nil {
			uc.logger.Error("ConfirmBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ConfirmBooking: booking=%s confirmed by client=%d, status=%s",
		req.BookingID, req.ClientID, result.Status)
	return result, nil
}

// mergeLocalClientVote отражает зафиксированный голос в загруженной копии,
// чтобы агрегирование видело собственный голос актора
func mergeLocalClientVote(booking *domain.Booking, clientID int64, now time.Time) {
	vote := booking.ClientVote(clientID)
	if vote == nil {
		booking.ClientVotes = append(booking.ClientVotes, domain.ParticipantVote{ParticipantID: clientID})
		vote = &booking.ClientVotes[len(booking.ClientVotes)-1]
	}
	vote.Accepted = true
	vote.VotedAt = &now
}
