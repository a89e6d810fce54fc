// Package notifysub tails the notifications fanout queue and logs every
// delivery, giving operators a live view of what users are being shown.
package notifysub

import (
	"context"
	"encoding/json"

	"frylyle/internal/common/logger"
	"frylyle/internal/common/mq"
)

func Run(ctx context.Context, client *mq.Client) error {
	lg := logger.New("notification-subscriber")

	deliveries, err := client.Consume(mq.NotificationsQueue, "notification-subscriber", 1)
	if err != nil {
		return err
	}
	lg.Info("subscribed", map[string]any{"queue": mq.NotificationsQueue})

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			var payload map[string]any
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				lg.Error("bad_notification_payload", err, nil)
				_ = d.Nack(false, false)
				continue
			}
			lg.Info("notification_delivered", payload)
			_ = d.Ack(false)
		}
	}
}
