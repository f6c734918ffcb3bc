package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusRequested          BookingStatus = "requested"
	StatusPartiallyAccepted  BookingStatus = "partially_accepted"
	StatusPendingAcceptance  BookingStatus = "pending_acceptance"
	StatusPartiallyConfirmed BookingStatus = "partially_confirmed"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusDeclinedByClient   BookingStatus = "declined_by_client"
	StatusCancelledByClient  BookingStatus = "cancelled"
	StatusCancelledByCoach   BookingStatus = "cancelled_by_coach"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Role of a booking participant
type Role string

const (
	RoleClient Role = "client"
	RoleCoach  Role = "coach"
)

// Booking represents a training session booking in the system.
// A booking is a group booking when it lists more than one coach or more
// than one client; the flag is always derived, never stored.
type Booking struct {
	ID        uuid.UUID
	ClientIDs []int64
	CoachIDs  []int64

	StartAt  time.Time
	EndAt    time.Time
	Location *string

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Single-coach rate; multi-coach rates live in CoachVotes
	RateUSD *float64

	Notes     *string
	CoachNote *string

	// Per-participant acceptance/confirmation state
	CoachVotes  []ParticipantVote
	ClientVotes []ParticipantVote

	ClientDeclineReason *string
	CancellationReason  *string

	CreatedAt   time.Time
	PendingAt   *time.Time
	ConfirmedAt *time.Time
	DeclinedAt  *time.Time
	CancelledAt *time.Time
	UpdatedAt   time.Time
}

// IsGroup returns true if the booking involves more than one coach or client
func (b *Booking) IsGroup() bool {
	return len(b.CoachIDs) > 1 || len(b.ClientIDs) > 1
}

// IsTerminal returns true if no further status transition is defined
func (b *Booking) IsTerminal() bool {
	switch b.Status {
	case StatusDeclinedByClient, StatusCancelledByClient, StatusCancelledByCoach:
		return true
	case StatusConfirmed:
		return b.PaymentStatus == PaymentPaid
	}
	return false
}

// CanBeAcceptedByCoach returns true if a coach acceptance is still expected
func (b *Booking) CanBeAcceptedByCoach() bool {
	if b.Status == StatusRequested {
		return true
	}
	return b.IsGroup() && b.Status == StatusPartiallyAccepted
}

// CanBeConfirmedByClient returns true if a client confirmation is expected
func (b *Booking) CanBeConfirmedByClient() bool {
	if b.Status == StatusPendingAcceptance {
		return true
	}
	return b.IsGroup() && b.Status == StatusPartiallyConfirmed
}

// CanBeDeclinedByClient returns true if a client may still decline
func (b *Booking) CanBeDeclinedByClient() bool {
	return b.Status == StatusPendingAcceptance ||
		(b.IsGroup() && b.Status == StatusPartiallyConfirmed)
}

// CanBeCancelled returns true if the booking can be cancelled.
// A paid booking can never be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed && b.PaymentStatus != PaymentPaid
}

// HasCoach returns true if coachID is listed on the booking
func (b *Booking) HasCoach(coachID int64) bool {
	for _, id := range b.CoachIDs {
		if id == coachID {
			return true
		}
	}
	return false
}

// HasClient returns true if clientID is listed on the booking
func (b *Booking) HasClient(clientID int64) bool {
	for _, id := range b.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// IsParticipant returns true if the actor is listed with the given role
func (b *Booking) IsParticipant(participantID int64, role Role) bool {
	switch role {
	case RoleClient:
		return b.HasClient(participantID)
	case RoleCoach:
		return b.HasCoach(participantID)
	}
	return false
}

// CoachVote returns the acceptance vote of the given coach, if any
func (b *Booking) CoachVote(coachID int64) *ParticipantVote {
	for i := range b.CoachVotes {
		if b.CoachVotes[i].ParticipantID == coachID {
			return &b.CoachVotes[i]
		}
	}
	return nil
}

// ClientVote returns the confirmation vote of the given client, if any
func (b *Booking) ClientVote(clientID int64) *ParticipantVote {
	for i := range b.ClientVotes {
		if b.ClientVotes[i].ParticipantID == clientID {
			return &b.ClientVotes[i]
		}
	}
	return nil
}

// AllCoachesAccepted returns true if every listed coach has accepted
func (b *Booking) AllCoachesAccepted() bool {
	if len(b.CoachVotes) == 0 {
		return false
	}
	for _, v := range b.CoachVotes {
		if !v.Accepted {
			return false
		}
	}
	return true
}

// AllClientsConfirmed returns true if every listed client has confirmed
func (b *Booking) AllClientsConfirmed() bool {
	if len(b.ClientVotes) == 0 {
		return false
	}
	for _, v := range b.ClientVotes {
		if !v.Accepted {
			return false
		}
	}
	return true
}

// CoachRates returns the per-coach rates recorded so far.
// Only coaches that submitted a rate appear as keys.
func (b *Booking) CoachRates() map[int64]float64 {
	rates := make(map[int64]float64)
	for _, v := range b.CoachVotes {
		if v.RateUSD != nil {
			rates[v.ParticipantID] = *v.RateUSD
		}
	}
	return rates
}

// HasCompleteRates returns true if every listed coach has a recorded rate
func (b *Booking) HasCompleteRates() bool {
	return len(b.CoachIDs) > 0 && len(b.CoachRates()) == len(b.CoachIDs)
}
