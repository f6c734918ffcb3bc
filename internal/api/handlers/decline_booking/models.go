package decline_booking

// DeclineBookingRequest HTTP request model
type DeclineBookingRequest struct {
	Reason string `json:"reason"`
}
