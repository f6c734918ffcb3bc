package create_booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// UseCase use case для создания бронирования
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

// Execute выполняет use case создания бронирования.
// Primary запись, зеркала участников и уведомления тренерам пишутся одной
// сериализуемой транзакцией: зеркало без primary существовать не может.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: actor=%d, clients=%v, coaches=%v, start=%s, end=%s",
		req.ActorID, req.ClientIDs, req.CoachIDs, req.StartAt, req.EndAt)

	// 1. Валидация входных данных (до любой записи)
	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Собираем бронирование в исходном статусе
	booking := &domain.Booking{
		ID:            uuid.New(),
		ClientIDs:     req.ClientIDs,
		CoachIDs:      req.CoachIDs,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		Location:      req.Location,
		Notes:         req.Notes,
		Status:        domain.StatusRequested,
		PaymentStatus: domain.PaymentUnpaid,
	}

	// 3. Сохраняем атомарно и кладем уведомления тренерам в outbox
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}
		booking = created

		if err := uc.outboxRepo.Create(txCtx, booking.RequestedNotifications()); err != nil {
			uc.logger.Error("CreateBooking: failed to enqueue notifications: %v", err)
			return fmt.Errorf("%w: failed to enqueue notifications: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s (group=%t)",
		booking.ID, booking.IsGroup())
	return booking, nil
}
