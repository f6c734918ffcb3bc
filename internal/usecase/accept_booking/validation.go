package accept_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}
	if req.CoachID <= 0 {
		return fmt.Errorf("%w: coachID must be positive", ErrInvalidInput)
	}
	if req.RateUSD != nil && *req.RateUSD < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidInput)
	}
	if req.CoachNote != nil && len(*req.CoachNote) > domain.MaxNotesLength {
		return fmt.Errorf("%w: coach note is too long", ErrInvalidInput)
	}
	return nil
}

// mergeLocalCoachVote отражает зафиксированный голос в загруженной копии
// бронирования, чтобы агрегирование видело собственный голос актора
func mergeLocalCoachVote(booking *domain.Booking, req *Request, now time.Time) {
	vote := booking.CoachVote(req.CoachID)
	if vote == nil {
		booking.CoachVotes = append(booking.CoachVotes, domain.ParticipantVote{ParticipantID: req.CoachID})
		vote = &booking.CoachVotes[len(booking.CoachVotes)-1]
	}
	vote.Accepted = true
	vote.VotedAt = &now
	if req.RateUSD != nil {
		vote.RateUSD = req.RateUSD
	}
}

// applyLocalDelta отражает примененный delta в загруженной копии
func applyLocalDelta(booking *domain.Booking, delta domain.TransitionDelta) {
	if delta.Status != nil {
		booking.Status = *delta.Status
	}
	if delta.RateUSD != nil {
		booking.RateUSD = delta.RateUSD
	}
	if delta.CoachNote != nil {
		booking.CoachNote = delta.CoachNote
	}
	if delta.PendingAt != nil {
		booking.PendingAt = delta.PendingAt
	}
}
