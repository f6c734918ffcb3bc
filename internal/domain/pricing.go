package domain

import (
	"math"
	"time"
)

// DurationHours computes the booking duration in hours, rounded to the
// nearest half-hour increment with ties rounding away from zero.
// A non-positive result means the duration is unknown; callers must treat
// 0 as "no cost can be computed".
func DurationHours(startAt, endAt time.Time) float64 {
	minutes := endAt.Sub(startAt).Minutes()
	if minutes <= 0 {
		return 0
	}
	return math.Round(minutes/SlotMinutes) * SlotHours
}

// Cost computes the total cost for a single-coach booking.
// Returns nil ("unknown") when the rate is missing or the duration is not
// positive.
func Cost(rateUSD *float64, durationHours float64) *float64 {
	if rateUSD == nil || durationHours <= 0 {
		return nil
	}
	total := *rateUSD * durationHours
	return &total
}

// GroupCost computes the total cost for a multi-coach booking as the sum of
// all recorded per-coach rates times the duration.
// Returns nil ("unknown") when no rates are recorded yet or the duration is
// not positive.
func GroupCost(coachRates map[int64]float64, durationHours float64) *float64 {
	if len(coachRates) == 0 || durationHours <= 0 {
		return nil
	}
	var sum float64
	for _, rate := range coachRates {
		sum += rate
	}
	total := sum * durationHours
	return &total
}

// TotalCost computes the displayable cost of a booking.
// For group bookings the cost stays unknown until every listed coach has a
// recorded rate.
func (b *Booking) TotalCost() *float64 {
	hours := DurationHours(b.StartAt, b.EndAt)
	if b.IsGroup() {
		if !b.HasCompleteRates() {
			return nil
		}
		return GroupCost(b.CoachRates(), hours)
	}
	return Cost(b.RateUSD, hours)
}
