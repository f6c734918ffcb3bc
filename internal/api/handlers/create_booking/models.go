package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	createBooking "github.com/m04kA/SMC-CoachingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientIDs []int64 `json:"clientIds"`
	CoachIDs  []int64 `json:"coachIds"`
	StartAt   string  `json:"startAt"` // RFC 3339, например "2026-09-05T10:00:00Z"
	EndAt     string  `json:"endAt"`   // RFC 3339
	Location  *string `json:"location,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actorID int64, actorRole domain.Role) (*createBooking.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}
	endAt, err := time.Parse(time.RFC3339, r.EndAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ActorID:   actorID,
		ActorRole: actorRole,
		ClientIDs: r.ClientIDs,
		CoachIDs:  r.CoachIDs,
		StartAt:   startAt,
		EndAt:     endAt,
		Location:  r.Location,
		Notes:     r.Notes,
	}, nil
}
