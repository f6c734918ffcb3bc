package domain

import "time"

// ParticipantVote is the acceptance (coach side) or confirmation (client
// side) state of a single participant. Exactly one vote exists per listed
// participant; votes are merged field-by-field at the storage layer so that
// two participants voting concurrently never overwrite each other.
type ParticipantVote struct {
	ParticipantID int64
	Accepted      bool

	// Per-coach rate; nil for client votes and for coaches that
	// accepted without naming a rate
	RateUSD *float64

	// Set when the participant votes; nil until then
	VotedAt *time.Time
}
