// Package pubsub is an in-process publish/subscribe broker. Delivery
// is at-most-once and best-effort: there is no replay, a subscriber
// only sees events published while it is registered, and a subscriber
// that cannot keep up loses events rather than blocking the publisher.
// Delivery order matches publish order per subscriber; nothing is
// guaranteed across subscribers or topics.
package pubsub

import (
	"sync"

	"linkfeed/internal/logger"

	"github.com/google/uuid"
)

type Topic string

const (
	TopicNewLink Topic = "NEW_LINK"
	TopicNewVote Topic = "NEW_VOTE"
)

// Event is one published item as seen by a subscriber.
type Event struct {
	Topic   Topic
	Payload any
}

// subscriberBuffer bounds how far a subscriber may lag before events
// are dropped for it. Publishers never block on a slow subscriber.
const subscriberBuffer = 16

type Bus struct {
	mu   sync.Mutex
	subs map[Topic]map[string]*Subscription
	log  *logger.Logger
}

func New(log *logger.Logger) *Bus {
	return &Bus{
		subs: make(map[Topic]map[string]*Subscription),
		log:  log,
	}
}

// Subscribe registers a new subscriber on topic. The returned
// Subscription receives every event published on that topic from now
// until Close is called.
func (b *Bus) Subscribe(topic Topic) *Subscription {
	sub := &Subscription{
		id:    uuid.NewString(),
		topic: topic,
		ch:    make(chan Event, subscriberBuffer),
		bus:   b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[string]*Subscription)
	}
	b.subs[topic][sub.id] = sub
	return sub
}

// Publish delivers payload to every subscriber currently registered on
// topic. Publishes are serialized, which is what makes delivery order
// per subscriber match publish order.
func (b *Bus) Publish(topic Topic, payload any) {
	ev := Event{Topic: topic, Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs[topic] {
		select {
		case sub.ch <- ev:
		default:
			if b.log != nil {
				b.log.Warnw("pubsub_event_dropped", "topic", string(topic), "subscriber", sub.id)
			}
		}
	}
}

// SubscriberCount reports how many subscriptions are active on topic.
func (b *Bus) SubscriberCount(topic Topic) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[topic])
}

// remove unregisters sub. After remove returns no publisher holds a
// reference to the subscription's channel, so closing it is safe.
func (b *Bus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs[sub.topic], sub.id)
	if len(b.subs[sub.topic]) == 0 {
		delete(b.subs, sub.topic)
	}
}

// Subscription is a live, cancellable stream of events on one topic.
type Subscription struct {
	id        string
	topic     Topic
	ch        chan Event
	bus       *Bus
	closeOnce sync.Once
}

// Events returns the receive side of the stream. The channel is closed
// by Close.
func (s *Subscription) Events() <-chan Event { return s.ch }

// Topic reports which topic this subscription listens on.
func (s *Subscription) Topic() Topic { return s.topic }

// Close unregisters the subscription and closes its channel. Safe to
// call more than once and concurrently with Publish.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.remove(s)
		close(s.ch)
	})
}
