package notify

import (
	"context"
	"encoding/json"

	"frylyle/internal/common/logger"
)

// Publisher is satisfied by the AMQP client.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, priority uint8, body []byte) error
}

type relayMessage struct {
	Device       string       `json:"device"`
	Notification Notification `json:"notification"`
}

// Relay mirrors shown notifications onto a fanout exchange so operators
// can watch what users are being told. Best-effort: publish failures are
// logged and the stream keeps going.
type Relay struct {
	pub      Publisher
	exchange string
	lg       *logger.Logger
}

func NewRelay(pub Publisher, exchange string, lg *logger.Logger) *Relay {
	if lg == nil {
		lg = logger.NewNop()
	}
	return &Relay{pub: pub, exchange: exchange, lg: lg}
}

// Watch consumes events until ctx is cancelled or the subscription is
// closed. Callers usually run it on its own goroutine per device session.
func (r *Relay) Watch(ctx context.Context, device string, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Type != EventShown {
				continue
			}
			body, err := json.Marshal(relayMessage{Device: device, Notification: ev.Notification})
			if err != nil {
				continue
			}
			if err := r.pub.Publish(ctx, r.exchange, "", 0, body); err != nil {
				r.lg.Error("notification_relay_publish_failed", err, map[string]any{"device": device})
			}
		}
	}
}
