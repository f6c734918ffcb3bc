package notify

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// NotificationChannel канал доставки уведомлений (push-шлюз, MQ и т.п.)
type NotificationChannel interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// OutboxRepository интерфейс репозитория outbox
type OutboxRepository interface {
	ListUnsent(ctx context.Context, limit int) ([]*domain.Notification, error)
	MarkSent(ctx context.Context, id int64, sentAt time.Time) error
}

// Metrics счетчики отправки уведомлений
type Metrics interface {
	IncNotificationsSent()
	IncNotificationsFailed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
