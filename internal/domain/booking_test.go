package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

func TestBookingIsGroup(t *testing.T) {
	tests := []struct {
		name      string
		clientIDs []int64
		coachIDs  []int64
		expected  bool
	}{
		{name: "one client one coach", clientIDs: []int64{1}, coachIDs: []int64{101}, expected: false},
		{name: "two clients", clientIDs: []int64{1, 2}, coachIDs: []int64{101}, expected: true},
		{name: "two coaches", clientIDs: []int64{1}, coachIDs: []int64{101, 102}, expected: true},
		{name: "two of each", clientIDs: []int64{1, 2}, coachIDs: []int64{101, 102}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{ClientIDs: tt.clientIDs, CoachIDs: tt.coachIDs}
			assert.Equal(t, tt.expected, b.IsGroup())
		})
	}
}

func TestBookingIsTerminal(t *testing.T) {
	tests := []struct {
		name          string
		status        BookingStatus
		paymentStatus PaymentStatus
		expected      bool
	}{
		{name: "requested", status: StatusRequested, paymentStatus: PaymentUnpaid, expected: false},
		{name: "pending acceptance", status: StatusPendingAcceptance, paymentStatus: PaymentUnpaid, expected: false},
		{name: "confirmed unpaid", status: StatusConfirmed, paymentStatus: PaymentUnpaid, expected: false},
		{name: "confirmed paid", status: StatusConfirmed, paymentStatus: PaymentPaid, expected: true},
		{name: "declined", status: StatusDeclinedByClient, paymentStatus: PaymentUnpaid, expected: true},
		{name: "cancelled by client", status: StatusCancelledByClient, paymentStatus: PaymentUnpaid, expected: true},
		{name: "cancelled by coach", status: StatusCancelledByCoach, paymentStatus: PaymentUnpaid, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, PaymentStatus: tt.paymentStatus}
			assert.Equal(t, tt.expected, b.IsTerminal())
		})
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	t.Run("confirmed unpaid can be cancelled", func(t *testing.T) {
		b := &Booking{Status: StatusConfirmed, PaymentStatus: PaymentUnpaid}
		assert.True(t, b.CanBeCancelled())
	})

	t.Run("paid booking is locked", func(t *testing.T) {
		b := &Booking{Status: StatusConfirmed, PaymentStatus: PaymentPaid}
		assert.False(t, b.CanBeCancelled())
	})

	t.Run("unconfirmed booking cannot be cancelled", func(t *testing.T) {
		b := &Booking{Status: StatusPendingAcceptance, PaymentStatus: PaymentUnpaid}
		assert.False(t, b.CanBeCancelled())
	})
}

func TestBookingCanBeAcceptedByCoach(t *testing.T) {
	t.Run("requested booking", func(t *testing.T) {
		b := &Booking{ClientIDs: []int64{1}, CoachIDs: []int64{101}, Status: StatusRequested}
		assert.True(t, b.CanBeAcceptedByCoach())
	})

	t.Run("partially accepted group booking", func(t *testing.T) {
		b := &Booking{ClientIDs: []int64{1}, CoachIDs: []int64{101, 102}, Status: StatusPartiallyAccepted}
		assert.True(t, b.CanBeAcceptedByCoach())
	})

	t.Run("pending acceptance is closed for coaches", func(t *testing.T) {
		b := &Booking{ClientIDs: []int64{1}, CoachIDs: []int64{101}, Status: StatusPendingAcceptance}
		assert.False(t, b.CanBeAcceptedByCoach())
	})
}

func TestBookingIsParticipant(t *testing.T) {
	b := &Booking{ClientIDs: []int64{1, 2}, CoachIDs: []int64{101}}

	assert.True(t, b.IsParticipant(1, RoleClient))
	assert.True(t, b.IsParticipant(101, RoleCoach))
	assert.False(t, b.IsParticipant(101, RoleClient))
	assert.False(t, b.IsParticipant(1, RoleCoach))
	assert.False(t, b.IsParticipant(999, RoleClient))
}

func TestBookingVoteAggregation(t *testing.T) {
	t.Run("all coaches accepted", func(t *testing.T) {
		b := &Booking{
			CoachIDs: []int64{101, 102},
			CoachVotes: []ParticipantVote{
				{ParticipantID: 101, Accepted: true},
				{ParticipantID: 102, Accepted: true},
			},
		}
		assert.True(t, b.AllCoachesAccepted())
	})

	t.Run("one coach still missing", func(t *testing.T) {
		b := &Booking{
			CoachIDs: []int64{101, 102},
			CoachVotes: []ParticipantVote{
				{ParticipantID: 101, Accepted: true},
				{ParticipantID: 102, Accepted: false},
			},
		}
		assert.False(t, b.AllCoachesAccepted())
	})

	t.Run("no votes recorded", func(t *testing.T) {
		b := &Booking{CoachIDs: []int64{101}}
		assert.False(t, b.AllCoachesAccepted())
		assert.False(t, b.AllClientsConfirmed())
	})
}

func TestBookingCoachRates(t *testing.T) {
	b := &Booking{
		CoachIDs: []int64{101, 102},
		CoachVotes: []ParticipantVote{
			{ParticipantID: 101, Accepted: true, RateUSD: ptr.Ptr(40.0)},
			{ParticipantID: 102, Accepted: true},
		},
	}

	rates := b.CoachRates()
	assert.Equal(t, map[int64]float64{101: 40.0}, rates)
	assert.False(t, b.HasCompleteRates())

	b.CoachVotes[1].RateUSD = ptr.Ptr(60.0)
	assert.True(t, b.HasCompleteRates())
}

func TestNotificationBuilders(t *testing.T) {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	b := &Booking{
		ID:        uuid.New(),
		ClientIDs: []int64{1, 2},
		CoachIDs:  []int64{101, 102},
		StartAt:   start,
		EndAt:     start.Add(time.Hour),
		Status:    StatusRequested,
	}

	t.Run("requested goes to every coach", func(t *testing.T) {
		got := b.RequestedNotifications()
		assert.Len(t, got, 2)
		for _, n := range got {
			assert.Equal(t, RoleCoach, n.RecipientRole)
			assert.Equal(t, b.ID, n.BookingID)
			assert.NotEmpty(t, n.Title)
			assert.NotEmpty(t, n.Body)
		}
	})

	t.Run("cancelled by client goes to coaches", func(t *testing.T) {
		got := b.CancelledNotifications(RoleClient)
		assert.Len(t, got, 2)
		for _, n := range got {
			assert.Equal(t, RoleCoach, n.RecipientRole)
		}
	})

	t.Run("cancelled by coach goes to clients", func(t *testing.T) {
		got := b.CancelledNotifications(RoleCoach)
		assert.Len(t, got, 2)
		for _, n := range got {
			assert.Equal(t, RoleClient, n.RecipientRole)
		}
	})

	t.Run("declined goes to coaches with reason", func(t *testing.T) {
		got := b.DeclinedNotifications("слишком дорого")
		assert.Len(t, got, 2)
		for _, n := range got {
			assert.Equal(t, RoleCoach, n.RecipientRole)
			assert.Contains(t, n.Body, "слишком дорого")
		}
	})
}
