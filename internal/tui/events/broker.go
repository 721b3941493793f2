package events

import (
	"fmt"
	"sync"
)

// Broker manages event distribution
type Broker struct {
	subscribers map[EventType][]chan Event
	mu          sync.RWMutex
	bufferSize  int
}

// DefaultBufferSize is the per-subscriber channel capacity
const DefaultBufferSize = 16

// NewBroker creates a new event broker
func NewBroker() *Broker {
	return NewBrokerWithBuffer(DefaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscriber channels hold size
// events. Publishing to a full channel drops the event for that subscriber.
func NewBrokerWithBuffer(size int) *Broker {
	if size < 1 {
		size = 1
	}
	return &Broker{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  size,
	}
}

// Subscribe creates a subscription to specific event types
func (b *Broker) Subscribe(eventTypes ...EventType) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, b.bufferSize)

	// If no specific types provided, subscribe to all
	if len(eventTypes) == 0 {
		eventTypes = []EventType{"*"} // wildcard
	}

	for _, eventType := range eventTypes {
		b.subscribers[eventType] = append(b.subscribers[eventType], ch)
	}

	return ch
}

// Unsubscribe removes a subscription. With no event types the channel is
// removed everywhere. The channel is closed once it has no subscriptions left.
func (b *Broker) Unsubscribe(ch <-chan Event, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(eventTypes) == 0 {
		for eventType := range b.subscribers {
			eventTypes = append(eventTypes, eventType)
		}
	}

	var removed chan Event
	for _, eventType := range eventTypes {
		if c := b.removeChannel(eventType, ch); c != nil {
			removed = c
		}
	}
	if removed != nil && !b.subscribed(removed) {
		close(removed)
	}
}

// Publish sends an event to all subscribers without blocking. It reports how
// many subscribers received it.
func (b *Broker) Publish(event Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for _, key := range []EventType{event.Type, "*"} {
		for _, ch := range b.subscribers[key] {
			select {
			case ch <- event:
				delivered++
			default:
				// Channel full, skip this event
			}
		}
	}
	return delivered
}

// Publishf publishes a status message event
func (b *Broker) Publishf(kind, format string, args ...any) {
	b.Publish(Event{
		Type:    StatusMessageEvent,
		Payload: StatusMessagePayload{Message: fmt.Sprintf(format, args...), Type: kind},
	})
}

// removeChannel drops target from one event type's subscribers and returns
// it, or nil if it was not subscribed to that type.
func (b *Broker) removeChannel(eventType EventType, target <-chan Event) chan Event {
	var removed chan Event
	subscribers := b.subscribers[eventType]
	for i, ch := range subscribers {
		if ch == target {
			removed = ch
			b.subscribers[eventType] = append(subscribers[:i], subscribers[i+1:]...)
			break
		}
	}

	// Clean up empty subscriber lists
	if len(b.subscribers[eventType]) == 0 {
		delete(b.subscribers, eventType)
	}
	return removed
}

func (b *Broker) subscribed(target chan Event) bool {
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if ch == target {
				return true
			}
		}
	}
	return false
}

// Clear removes all subscriptions and closes their channels
func (b *Broker) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	closed := make(map[chan Event]bool)
	for _, subscribers := range b.subscribers {
		for _, ch := range subscribers {
			if !closed[ch] {
				close(ch)
				closed[ch] = true
			}
		}
	}

	b.subscribers = make(map[EventType][]chan Event)
}
