package scanevents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	hub := NewHub()
	sub, err := hub.Subscribe()
	require.NoError(t, err)
	defer sub.Close()

	ts := time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)
	hub.Publish(ts)

	select {
	case pulse := <-sub.Events():
		assert.Equal(t, ts, pulse.TS)
	case <-time.After(time.Second):
		t.Fatal("pulse not delivered")
	}
}

func TestPublishFanout(t *testing.T) {
	hub := NewHub()
	first, err := hub.Subscribe()
	require.NoError(t, err)
	defer first.Close()
	second, err := hub.Subscribe()
	require.NoError(t, err)
	defer second.Close()

	hub.Publish(time.Now())

	for _, sub := range []*Subscription{first, second} {
		select {
		case <-sub.Events():
		case <-time.After(time.Second):
			t.Fatal("subscriber missed pulse")
		}
	}
}

func TestSlowSubscriberNeverBlocksPublisher(t *testing.T) {
	hub := NewHub()
	sub, err := hub.Subscribe()
	require.NoError(t, err)
	defer sub.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < DefaultSubscriberBuffer*3; i++ {
			hub.Publish(time.Now())
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestCloseStopsDelivery(t *testing.T) {
	hub := NewHub()
	sub, err := hub.Subscribe()
	require.NoError(t, err)

	sub.Close()
	sub.Close() // idempotent
	hub.Publish(time.Now())

	select {
	case _, ok := <-sub.Events():
		if ok {
			t.Fatal("pulse delivered after close")
		}
	default:
	}
}

func TestShutdownRejectsNewSubscribers(t *testing.T) {
	hub := NewHub()
	hub.Shutdown()

	_, err := hub.Subscribe()
	assert.Error(t, err)

	// Publishing after shutdown is a no-op, not a panic.
	hub.Publish(time.Now())
}
