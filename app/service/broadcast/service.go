package broadcast

import (
	"log/slog"
	"sync"

	"github.com/samber/do"
)

const mailboxSize = 64

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Subscriber is a bounded mailbox registered for the lifetime of one stream
// connection.
type Subscriber struct {
	ch chan Event
}

func (s *Subscriber) Channel() <-chan Event {
	return s.ch
}

// Service fans events out to every live subscriber. Delivery is best-effort:
// a full mailbox drops the event for that subscriber only.
type Service struct {
	mu   sync.Mutex
	subs map[*Subscriber]struct{}
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		subs: make(map[*Subscriber]struct{}),
	}, nil
}

func (s *Service) Subscribe() *Subscriber {
	sub := &Subscriber{
		ch: make(chan Event, mailboxSize),
	}

	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()

	return sub
}

// Unsubscribe removes a subscriber. Calling it twice is a no-op.
func (s *Service) Unsubscribe(sub *Subscriber) {
	s.mu.Lock()
	delete(s.subs, sub)
	s.mu.Unlock()
}

func (s *Service) Publish(event Event) {
	s.mu.Lock()
	subs := make([]*Subscriber, 0, len(s.subs))
	for sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub.ch <- event:
		default:
			slog.Warn("subscriber mailbox is full, dropping event", "type", event.Type)
		}
	}
}

func (s *Service) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.subs)
}
