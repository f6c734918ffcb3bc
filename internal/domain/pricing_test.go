package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CoachingService/pkg/ptr"
)

func TestDurationHours(t *testing.T) {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		minutes  int
		expected float64
	}{
		{name: "exactly one slot", minutes: 30, expected: 0.5},
		{name: "rounds 40 minutes down to one slot", minutes: 40, expected: 0.5},
		{name: "tie at 45 minutes rounds up", minutes: 45, expected: 1.0},
		{name: "rounds 50 minutes up to two slots", minutes: 50, expected: 1.0},
		{name: "ninety minutes", minutes: 90, expected: 1.5},
		{name: "tie at 75 minutes rounds up", minutes: 75, expected: 1.5},
		{name: "short session rounds away from zero", minutes: 15, expected: 0.5},
		{name: "very short session rounds to zero", minutes: 7, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end := start.Add(time.Duration(tt.minutes) * time.Minute)
			assert.Equal(t, tt.expected, DurationHours(start, end))
		})
	}
}

func TestDurationHours_NonPositive(t *testing.T) {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0.0, DurationHours(start, start))
	assert.Equal(t, 0.0, DurationHours(start, start.Add(-time.Hour)))
}

func TestCost(t *testing.T) {
	t.Run("known rate and duration", func(t *testing.T) {
		got := Cost(ptr.Ptr(45.0), 1.5)
		require.NotNil(t, got)
		assert.Equal(t, 67.5, *got)
	})

	t.Run("missing rate means unknown cost", func(t *testing.T) {
		assert.Nil(t, Cost(nil, 1.5))
	})

	t.Run("zero duration means unknown cost", func(t *testing.T) {
		assert.Nil(t, Cost(ptr.Ptr(45.0), 0))
	})
}

func TestGroupCost(t *testing.T) {
	t.Run("sums all coach rates", func(t *testing.T) {
		rates := map[int64]float64{101: 40, 102: 60}
		got := GroupCost(rates, 2.0)
		require.NotNil(t, got)
		assert.Equal(t, 200.0, *got)
	})

	t.Run("no rates means unknown cost", func(t *testing.T) {
		assert.Nil(t, GroupCost(map[int64]float64{}, 2.0))
		assert.Nil(t, GroupCost(nil, 2.0))
	})
}

func TestBookingTotalCost(t *testing.T) {
	start := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	t.Run("simple booking uses single rate", func(t *testing.T) {
		b := &Booking{
			ClientIDs: []int64{1},
			CoachIDs:  []int64{101},
			StartAt:   start,
			EndAt:     end,
			RateUSD:   ptr.Ptr(50.0),
		}
		got := b.TotalCost()
		require.NotNil(t, got)
		assert.Equal(t, 75.0, *got)
	})

	t.Run("simple booking without rate is unknown", func(t *testing.T) {
		b := &Booking{
			ClientIDs: []int64{1},
			CoachIDs:  []int64{101},
			StartAt:   start,
			EndAt:     end,
		}
		assert.Nil(t, b.TotalCost())
	})

	t.Run("group booking requires every coach rate", func(t *testing.T) {
		b := &Booking{
			ClientIDs: []int64{1},
			CoachIDs:  []int64{101, 102},
			StartAt:   start,
			EndAt:     end,
			CoachVotes: []ParticipantVote{
				{ParticipantID: 101, Accepted: true, RateUSD: ptr.Ptr(40.0)},
				{ParticipantID: 102, Accepted: true},
			},
		}
		assert.Nil(t, b.TotalCost())
	})

	t.Run("group booking with complete rates", func(t *testing.T) {
		b := &Booking{
			ClientIDs: []int64{1},
			CoachIDs:  []int64{101, 102},
			StartAt:   start,
			EndAt:     end,
			CoachVotes: []ParticipantVote{
				{ParticipantID: 101, Accepted: true, RateUSD: ptr.Ptr(40.0)},
				{ParticipantID: 102, Accepted: true, RateUSD: ptr.Ptr(60.0)},
			},
		}
		got := b.TotalCost()
		require.NotNil(t, got)
		assert.Equal(t, 150.0, *got)
	})
}
