package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Notification is a single outbox record addressed to one participant.
// Records are written in the same transaction as the status transition they
// describe and delivered later by the dispatcher; delivery is best-effort.
type Notification struct {
	ID            int64
	BookingID     uuid.UUID
	RecipientID   int64
	RecipientRole Role
	Title         string
	Body          string
	CreatedAt     time.Time
	SentAt        *time.Time
}

// Заголовки уведомлений
const (
	titleRequested     = "Новая заявка на тренировку"
	titleAccepted      = "Тренер принял заявку"
	titleReadyToBook   = "Заявка ждет вашего подтверждения"
	titleConfirmed     = "Бронирование подтверждено"
	titleDeclined      = "Клиент отклонил бронирование"
	titleCancelled     = "Бронирование отменено"
	titlePaymentResult = "Оплата получена"
)

// RequestedNotifications builds the coach-side notifications emitted when a
// client creates a booking.
func (b *Booking) RequestedNotifications() []*Notification {
	body := fmt.Sprintf("Клиент создал заявку на %s.", formatTimeRange(b.StartAt, b.EndAt))
	return b.notifyCoaches(titleRequested, body)
}

// AcceptedNotifications builds the client-side notifications emitted after a
// coach acceptance. When every coach has accepted, the text asks the client
// to confirm.
func (b *Booking) AcceptedNotifications() []*Notification {
	if b.Status == StatusPendingAcceptance {
		body := fmt.Sprintf("Все тренеры приняли заявку на %s. Подтвердите бронирование.",
			formatTimeRange(b.StartAt, b.EndAt))
		return b.notifyClients(titleReadyToBook, body)
	}
	body := fmt.Sprintf("Тренер принял заявку на %s. Ожидаются остальные подтверждения.",
		formatTimeRange(b.StartAt, b.EndAt))
	return b.notifyClients(titleAccepted, body)
}

// ConfirmedNotifications builds the coach-side notifications emitted after a
// client confirmation.
func (b *Booking) ConfirmedNotifications() []*Notification {
	var body string
	if b.Status == StatusConfirmed {
		body = fmt.Sprintf("Бронирование на %s подтверждено всеми участниками.",
			formatTimeRange(b.StartAt, b.EndAt))
	} else {
		body = fmt.Sprintf("Клиент подтвердил бронирование на %s. Ожидаются остальные подтверждения.",
			formatTimeRange(b.StartAt, b.EndAt))
	}
	return b.notifyCoaches(titleConfirmed, body)
}

// DeclinedNotifications builds the coach-side notifications emitted when a
// client declines the booking.
func (b *Booking) DeclinedNotifications(reason string) []*Notification {
	body := fmt.Sprintf("Клиент отклонил бронирование на %s.", formatTimeRange(b.StartAt, b.EndAt))
	if reason != "" {
		body += " Причина: " + reason
	}
	return b.notifyCoaches(titleDeclined, body)
}

// CancelledNotifications builds the notifications for the side opposite to
// the cancelling actor.
func (b *Booking) CancelledNotifications(actorRole Role) []*Notification {
	body := fmt.Sprintf("Бронирование на %s отменено.", formatTimeRange(b.StartAt, b.EndAt))
	if actorRole == RoleCoach {
		return b.notifyClients(titleCancelled, body)
	}
	return b.notifyCoaches(titleCancelled, body)
}

// PaymentNotifications builds the coach-side notifications emitted when the
// externally-driven paid flag is recorded.
func (b *Booking) PaymentNotifications() []*Notification {
	body := fmt.Sprintf("Бронирование на %s оплачено.", formatTimeRange(b.StartAt, b.EndAt))
	return b.notifyCoaches(titlePaymentResult, body)
}

func (b *Booking) notifyCoaches(title, body string) []*Notification {
	out := make([]*Notification, 0, len(b.CoachIDs))
	for _, id := range b.CoachIDs {
		out = append(out, &Notification{
			BookingID:     b.ID,
			RecipientID:   id,
			RecipientRole: RoleCoach,
			Title:         title,
			Body:          body,
		})
	}
	return out
}

func (b *Booking) notifyClients(title, body string) []*Notification {
	out := make([]*Notification, 0, len(b.ClientIDs))
	for _, id := range b.ClientIDs {
		out = append(out, &Notification{
			BookingID:     b.ID,
			RecipientID:   id,
			RecipientRole: RoleClient,
			Title:         title,
			Body:          body,
		})
	}
	return out
}

// formatTimeRange форматирует интервал вида "2026-03-10 10:00 - 11:30"
func formatTimeRange(startAt, endAt time.Time) string {
	return fmt.Sprintf("%s - %s", startAt.Format("2006-01-02 15:04"), endAt.Format("15:04"))
}
