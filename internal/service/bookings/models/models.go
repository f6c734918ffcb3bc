package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetParticipantBookingsRequest запрос на получение бронирований участника
type GetParticipantBookingsRequest struct {
	ActorID       int64       `json:"actorId"`
	ActorRole     domain.Role `json:"actorRole"`
	ParticipantID int64       `json:"participantId"`
	Status        *string     `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// VoteResponse состояние голоса одного участника
type VoteResponse struct {
	ParticipantID int64    `json:"participantId"`
	Accepted      bool     `json:"accepted"`
	RateUSD       *float64 `json:"rateUsd,omitempty"`
	VotedAt       *string  `json:"votedAt,omitempty"` // ISO 8601
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string  `json:"id"`
	ClientIDs     []int64 `json:"clientIds,omitempty"`
	CoachIDs      []int64 `json:"coachIds,omitempty"`
	GroupBooking  bool    `json:"groupBooking"`
	StartAt       string  `json:"startAt"` // ISO 8601
	EndAt         string  `json:"endAt"`   // ISO 8601
	Location      *string `json:"location,omitempty"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`

	RateUSD *float64 `json:"rateUsd,omitempty"`
	// Рассчитанные поля; null = "неизвестно"
	DurationHours *float64 `json:"durationHours,omitempty"`
	TotalCostUSD  *float64 `json:"totalCostUsd,omitempty"`

	Notes     *string `json:"notes,omitempty"`
	CoachNote *string `json:"coachNote,omitempty"`

	CoachVotes  []VoteResponse `json:"coachVotes,omitempty"`
	ClientVotes []VoteResponse `json:"clientVotes,omitempty"`

	ClientDeclineReason *string `json:"clientDeclineReason,omitempty"`
	CancellationReason  *string `json:"cancellationReason,omitempty"`

	PendingAt   *string `json:"pendingAt,omitempty"`
	ConfirmedAt *string `json:"confirmedAt,omitempty"`
	DeclinedAt  *string `json:"declinedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID.String(),
		ClientIDs:           b.ClientIDs,
		CoachIDs:            b.CoachIDs,
		GroupBooking:        b.IsGroup(),
		StartAt:             b.StartAt.Format(time.RFC3339),
		EndAt:               b.EndAt.Format(time.RFC3339),
		Location:            b.Location,
		Status:              string(b.Status),
		PaymentStatus:       string(b.PaymentStatus),
		RateUSD:             b.RateUSD,
		Notes:               b.Notes,
		CoachNote:           b.CoachNote,
		CoachVotes:          fromDomainVotes(b.CoachVotes),
		ClientVotes:         fromDomainVotes(b.ClientVotes),
		ClientDeclineReason: b.ClientDeclineReason,
		CancellationReason:  b.CancellationReason,
		PendingAt:           formatTime(b.PendingAt),
		ConfirmedAt:         formatTime(b.ConfirmedAt),
		DeclinedAt:          formatTime(b.DeclinedAt),
		CancelledAt:         formatTime(b.CancelledAt),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	// Нулевая длительность означает "неизвестно" и не попадает в ответ
	if hours := domain.DurationHours(b.StartAt, b.EndAt); hours > 0 {
		resp.DurationHours = &hours
	}
	resp.TotalCostUSD = b.TotalCost()

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}
	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	for _, valid := range domain.AllStatuses {
		if s == valid {
			return s, nil
		}
	}
	return "", ErrInvalidStatus
}

// ToDomainRole конвертирует строку в domain.Role с валидацией
func ToDomainRole(role string) (domain.Role, error) {
	switch domain.Role(role) {
	case domain.RoleClient:
		return domain.RoleClient, nil
	case domain.RoleCoach:
		return domain.RoleCoach, nil
	}
	return "", ErrInvalidStatus
}

// ParseBookingID парсит UUID бронирования из строки
func ParseBookingID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

func fromDomainVotes(votes []domain.ParticipantVote) []VoteResponse {
	if len(votes) == 0 {
		return nil
	}
	out := make([]VoteResponse, len(votes))
	for i, v := range votes {
		out[i] = VoteResponse{
			ParticipantID: v.ParticipantID,
			Accepted:      v.Accepted,
			RateUSD:       v.RateUSD,
			VotedAt:       formatTime(v.VotedAt),
		}
	}
	return out
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
