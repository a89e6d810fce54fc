package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAddsToActiveSet(t *testing.T) {
	b := NewBroadcaster(time.Minute)
	defer b.Close()

	id := b.Show("x", KindSuccess)
	active := b.Active()
	require.Len(t, active, 1)
	assert.Equal(t, id, active[0].ID)
	assert.Equal(t, "x", active[0].Message)
	assert.Equal(t, KindSuccess, active[0].Kind)
}

func TestAutoExpiry(t *testing.T) {
	b := NewBroadcaster(20 * time.Millisecond)
	defer b.Close()

	b.Show("x", KindSuccess)
	require.Len(t, b.Active(), 1)
	assert.Eventually(t, func() bool { return len(b.Active()) == 0 },
		time.Second, 5*time.Millisecond)
}

func TestDismissCancelsExpiry(t *testing.T) {
	b := NewBroadcaster(time.Minute)
	defer b.Close()

	id := b.Show("x", KindInfo)
	b.Dismiss(id)
	assert.Empty(t, b.Active())

	// Dismissing again is a no-op.
	b.Dismiss(id)
	assert.Empty(t, b.Active())
}

func TestIdenticalMessagesStack(t *testing.T) {
	b := NewBroadcaster(time.Minute)
	defer b.Close()

	first := b.Show("same", KindInfo)
	second := b.Show("same", KindInfo)
	assert.NotEqual(t, first, second)

	active := b.Active()
	require.Len(t, active, 2)
	assert.Equal(t, first, active[0].ID)
	assert.Equal(t, second, active[1].ID)
}

func TestSubscribeReceivesShownAndDismissed(t *testing.T) {
	b := NewBroadcaster(time.Minute)
	defer b.Close()

	events, cancel := b.Subscribe()
	defer cancel()

	id := b.Show("x", KindError)
	b.Dismiss(id)

	ev := <-events
	assert.Equal(t, EventShown, ev.Type)
	assert.Equal(t, id, ev.Notification.ID)

	ev = <-events
	assert.Equal(t, EventDismissed, ev.Type)
}

func TestCancelStopsSubscription(t *testing.T) {
	b := NewBroadcaster(time.Minute)
	defer b.Close()

	events, cancel := b.Subscribe()
	cancel()

	_, open := <-events
	assert.False(t, open)

	// Shows after cancel must not panic.
	b.Show("x", KindInfo)
}
