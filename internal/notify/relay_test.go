package notify

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (p *capturePublisher) Publish(_ context.Context, _, _ string, _ uint8, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bodies = append(p.bodies, body)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.bodies)
}

func TestRelayPublishesShownEvents(t *testing.T) {
	b := NewBroadcaster(time.Minute)
	defer b.Close()

	pub := &capturePublisher{}
	relay := NewRelay(pub, "notifications_fanout", nil)

	events, cancel := b.Subscribe()
	defer cancel()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go relay.Watch(ctx, "device-1", events)

	id := b.Show("Order placed", KindSuccess)
	b.Dismiss(id) // dismissals are not mirrored

	require.Eventually(t, func() bool { return pub.count() == 1 },
		time.Second, 5*time.Millisecond)

	var msg struct {
		Device       string       `json:"device"`
		Notification Notification `json:"notification"`
	}
	require.NoError(t, json.Unmarshal(pub.bodies[0], &msg))
	assert.Equal(t, "device-1", msg.Device)
	assert.Equal(t, "Order placed", msg.Notification.Message)
}
