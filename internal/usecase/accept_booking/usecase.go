package accept_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

// UseCase use case принятия бронирования тренером.
//
// Для обычного бронирования (один тренер, один клиент) принятие сразу
// переводит заявку в pending_acceptance. Для группового бронирования
// принятия агрегируются по голосам: пока согласились не все тренеры,
// бронирование остается в partially_accepted.
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

// Execute выполняет принятие бронирования тренером.
// Голос тренера, агрегированный статус, зеркала и уведомления фиксируются
// одной сериализуемой транзакцией; голос пишется field-level merge, поэтому
// два тренера, принимающие одновременно, не теряют голоса друг друга.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("AcceptBooking: booking=%s, coach=%d, rate=%v", req.BookingID, req.CoachID, req.RateUSD)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AcceptBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("AcceptBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("AcceptBooking: repository error for booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %w", ErrInternal, err)
		}

		// Проверки прав и допустимости перехода - до любой записи
		if !booking.HasCoach(req.CoachID) {
			uc.logger.Warn("AcceptBooking: coach=%d is not listed on booking=%s", req.CoachID, req.BookingID)
			return ErrNotParticipant
		}
		if !booking.CanBeAcceptedByCoach() {
			uc.logger.Warn("AcceptBooking: booking=%s in status=%s cannot be accepted", req.BookingID, booking.Status)
			return ErrInvalidTransition
		}

		now := uc.timeProvider.Now()

		// Фиксируем голос тренера (field-level merge по ключу участника)
		if err := uc.bookingRepo.MergeCoachVote(txCtx, req.BookingID, req.CoachID, req.RateUSD, now); err != nil {
			if errors.Is(err, bookingRepo.ErrVoteNotFound) {
				return ErrNotParticipant
			}
			uc.logger.Error("AcceptBooking: failed to merge coach vote: %v", err)
			return fmt.Errorf("%w: failed to merge coach vote: %w", ErrInternal, err)
		}
		mergeLocalCoachVote(booking, req, now)

		// Агрегируем статус: для группы - по голосам всех тренеров
		delta := domain.TransitionDelta{CoachNote: req.CoachNote}
		if booking.IsGroup() {
			if booking.AllCoachesAccepted() {
				delta.Status = ptr.Ptr(domain.StatusPendingAcceptance)
			} else {
				delta.Status = ptr.Ptr(domain.StatusPartiallyAccepted)
			}
		} else {
			delta.Status = ptr.Ptr(domain.StatusPendingAcceptance)
		}
		// Единственный тренер: его ставка и есть ставка бронирования,
		// в том числе для группы из нескольких клиентов
		if len(booking.CoachIDs) == 1 {
			delta.RateUSD = req.RateUSD
		}
		// pendingAt выставляется ровно один раз - при входе в pending_acceptance
		if *delta.Status == domain.StatusPendingAcceptance && booking.PendingAt == nil {
			delta.PendingAt = &now
		}

		if err := uc.bookingRepo.Transition(txCtx, req.BookingID, delta); err != nil {
			uc.logger.Error("AcceptBooking: failed to apply transition: %v", err)
			return fmt.Errorf("%w: failed to apply transition: %w", ErrInternal, err)
		}
		applyLocalDelta(booking, delta)

		// Уведомления клиентам - в той же транзакции, отправка позже
		if err := uc.outboxRepo.Create(txCtx, booking.AcceptedNotifications()); err != nil {
			uc.logger.Error("AcceptBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AcceptBooking: booking=%s accepted by coach=%d, status=%s",
		req.BookingID, req.CoachID, result.Status)
	return result, nil
}
