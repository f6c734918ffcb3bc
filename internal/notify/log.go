package notify

import (
	"context"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
)

// LogChannel канал-заглушка: пишет уведомления в лог.
// Используется, когда отправка во внешний канал выключена в конфигурации.
type LogChannel struct {
	logger Logger
}

// NewLogChannel создает лог-канал
func NewLogChannel(logger Logger) *LogChannel {
	return &LogChannel{logger: logger}
}

// Publish логирует уведомление вместо отправки
func (c *LogChannel) Publish(_ context.Context, n *domain.Notification) error {
	c.logger.Info("[notify] booking=%s recipient=%d role=%s title=%q body=%q",
		n.BookingID, n.RecipientID, n.RecipientRole, n.Title, n.Body)
	return nil
}
