package notify

import (
	"context"
	"time"
)

// Dispatcher читает зафиксированные уведомления из outbox и отправляет их
// в канал доставки. Отправка best-effort: ошибка публикации логируется,
// запись остается в outbox и будет повторена на следующем тике. Переход,
// породивший уведомление, к этому моменту уже зафиксирован и не зависит
// от судьбы доставки.
type Dispatcher struct {
	repo     OutboxRepository
	channel  NotificationChannel
	logger   Logger
	metrics  Metrics
	interval time.Duration
	batch    int
}

// NewDispatcher создает диспетчер уведомлений.
// metrics может быть nil, если метрики выключены.
func NewDispatcher(repo OutboxRepository, channel NotificationChannel, logger Logger, metrics Metrics, interval time.Duration, batch int) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		channel:  channel,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
		batch:    batch,
	}
}

// Run запускает цикл отправки до отмены контекста
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.Info("Notification dispatcher started (interval=%s, batch=%d)", d.interval, d.batch)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Notification dispatcher stopped")
			return
		case <-ticker.C:
			d.DispatchOnce(ctx)
		}
	}
}

// DispatchOnce отправляет одну пачку неотправленных уведомлений
func (d *Dispatcher) DispatchOnce(ctx context.Context) {
	notifications, err := d.repo.ListUnsent(ctx, d.batch)
	if err != nil {
		d.logger.Error("Dispatcher: failed to list unsent notifications: %v", err)
		return
	}
	if len(notifications) == 0 {
		return
	}

	sent := 0
	for _, n := range notifications {
		if err := d.channel.Publish(ctx, n); err != nil {
			// Запись остается неотправленной и будет повторена
			d.logger.Warn("Dispatcher: failed to publish notification id=%d booking=%s recipient=%d: %v",
				n.ID, n.BookingID, n.RecipientID, err)
			if d.metrics != nil {
				d.metrics.IncNotificationsFailed()
			}
			continue
		}

		if err := d.repo.MarkSent(ctx, n.ID, time.Now()); err != nil {
			// Уведомление уйдет повторно на следующем тике - допустимо,
			// доставка и так не гарантирует "ровно один раз"
			d.logger.Error("Dispatcher: failed to mark notification id=%d as sent: %v", n.ID, err)
			continue
		}
		if d.metrics != nil {
			d.metrics.IncNotificationsSent()
		}
		sent++
	}

	if sent > 0 {
		d.logger.Info("Dispatcher: sent %d/%d notifications", sent, len(notifications))
	}
}
