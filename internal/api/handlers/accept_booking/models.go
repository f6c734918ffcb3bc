package accept_booking

// AcceptBookingRequest HTTP request model
type AcceptBookingRequest struct {
	RateUSD   *float64 `json:"rateUsd,omitempty"`
	CoachNote *string  `json:"coachNote,omitempty"`
}
