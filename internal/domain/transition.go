package domain

import "time"

// TransitionDelta is the set of field changes applied by one status
// transition. The store applies the same delta to the primary record and to
// every participant mirror as a single atomic unit. A nil field is left
// unchanged; no transition ever clears a field.
type TransitionDelta struct {
	Status        *BookingStatus
	PaymentStatus *PaymentStatus

	RateUSD   *float64
	CoachNote *string

	ClientDeclineReason *string
	CancellationReason  *string

	PendingAt   *time.Time
	ConfirmedAt *time.Time
	DeclinedAt  *time.Time
	CancelledAt *time.Time
}

// IsEmpty returns true if the delta changes nothing
func (d *TransitionDelta) IsEmpty() bool {
	return d.Status == nil && d.PaymentStatus == nil &&
		d.RateUSD == nil && d.CoachNote == nil &&
		d.ClientDeclineReason == nil && d.CancellationReason == nil &&
		d.PendingAt == nil && d.ConfirmedAt == nil &&
		d.DeclinedAt == nil && d.CancelledAt == nil
}
