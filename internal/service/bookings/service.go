package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CoachingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CoachingService/internal/service/bookings/models"
)

// Service read-side сервис бронирований
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Доступ разрешен только участникам бронирования (клиентам и тренерам).
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actorID int64, actorRole domain.Role) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for actor=%d role=%s", id, actorID, actorRole)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %w", ErrInternal, err)
	}

	if !booking.IsParticipant(actorID, actorRole) {
		s.logger.Warn("GetByID: access denied for actor=%d role=%s to booking id=%s", actorID, actorRole, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%s", id)
	return models.FromDomainBooking(booking), nil
}

// GetParticipantBookings получает коллекцию бронирований участника.
// Участник может читать только собственную коллекцию зеркал.
func (s *Service) GetParticipantBookings(ctx context.Context, req *models.GetParticipantBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetParticipantBookings: fetching bookings for participant=%d role=%s, status=%v",
		req.ParticipantID, req.ActorRole, req.Status)

	if req.ActorID != req.ParticipantID {
		s.logger.Warn("GetParticipantBookings: actor=%d requested foreign collection of participant=%d",
			req.ActorID, req.ParticipantID)
		return nil, ErrAccessDenied
	}

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetParticipantBookings: invalid status=%s for participant=%d", *req.Status, req.ParticipantID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByParticipant(ctx, req.ParticipantID, req.ActorRole, domainStatus)
	if err != nil {
		s.logger.Error("GetParticipantBookings: repository error for participant=%d: %v", req.ParticipantID, err)
		return nil, fmt.Errorf("%w: GetParticipantBookings - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("GetParticipantBookings: successfully fetched %d bookings for participant=%d",
		len(bookings), req.ParticipantID)
	return models.FromDomainBookingList(bookings), nil
}
