package broadcast

import (
	"testing"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *Service {
	t.Helper()

	svc, err := New(do.New())
	require.NoError(t, err)

	return svc
}

func drain(sub *Subscriber) []Event {
	var events []Event

	for {
		select {
		case event := <-sub.Channel():
			events = append(events, event)
		default:
			return events
		}
	}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	svc := newService(t)

	first := svc.Subscribe()
	second := svc.Subscribe()

	svc.Publish(Event{Type: "transcript", Data: "hello"})

	require.Len(t, drain(first), 1)
	require.Len(t, drain(second), 1)
}

func TestPublishOrderPerSubscriber(t *testing.T) {
	svc := newService(t)
	sub := svc.Subscribe()

	svc.Publish(Event{Type: "transcript", Data: 1})
	svc.Publish(Event{Type: "status", Data: 2})

	events := drain(sub)
	require.Len(t, events, 2)
	assert.Equal(t, "transcript", events[0].Type)
	assert.Equal(t, "status", events[1].Type)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	svc := newService(t)

	sub := svc.Subscribe()
	svc.Unsubscribe(sub)

	svc.Publish(Event{Type: "transcript", Data: "lost"})

	assert.Empty(t, drain(sub))
	assert.Equal(t, 0, svc.SubscriberCount())
}

func TestUnsubscribeIdempotent(t *testing.T) {
	svc := newService(t)

	sub := svc.Subscribe()
	svc.Unsubscribe(sub)

	assert.NotPanics(t, func() {
		svc.Unsubscribe(sub)
	})
}

func TestFullMailboxDropsEvent(t *testing.T) {
	svc := newService(t)

	full := svc.Subscribe()

	for i := 0; i < mailboxSize; i++ {
		svc.Publish(Event{Type: "transcript", Data: i})
	}

	healthy := svc.Subscribe()

	for i := 0; i < 5; i++ {
		svc.Publish(Event{Type: "transcript", Data: i})
	}

	// the full mailbox lost the overflow, the fresh one got everything,
	// and the publisher never blocked
	assert.Len(t, drain(full), mailboxSize)
	assert.Len(t, drain(healthy), 5)
}
