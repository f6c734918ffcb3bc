package notify

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/mq"
)

// Routing key вида notification.client / notification.coach
const routingKeyPrefix = "notification"

// amqpPayload формат сообщения для внешнего канала доставки
type amqpPayload struct {
	BookingID     string `json:"booking_id"`
	RecipientID   int64  `json:"recipient_id"`
	RecipientRole string `json:"recipient_role"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}

// AMQPChannel канал доставки через RabbitMQ topic exchange
type AMQPChannel struct {
	publisher *mq.Publisher
}

// NewAMQPChannel создает канал поверх подключенного издателя
func NewAMQPChannel(publisher *mq.Publisher) *AMQPChannel {
	return &AMQPChannel{publisher: publisher}
}

// Publish публикует уведомление с routing key по роли получателя
func (c *AMQPChannel) Publish(ctx context.Context, n *domain.Notification) error {
	key := fmt.Sprintf("%s.%s", routingKeyPrefix, n.RecipientRole)
	return c.publisher.PublishJSON(ctx, key, amqpPayload{
		BookingID:     n.BookingID.String(),
		RecipientID:   n.RecipientID,
		RecipientRole: string(n.RecipientRole),
		Title:         n.Title,
		Body:          n.Body,
	})
}
