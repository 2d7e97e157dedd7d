package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub event bus.
//
// Handlers subscribe by Event.Type(), or to every type with AnyEvent. Publish calls
// handlers in the caller goroutine and joins their errors.
type EventBus interface {
	// Publish delivers the event synchronously to all active subscribers of event.Type().
	// If one or more handlers return an error, a joined error is returned.
	Publish(event Event) error
	// Subscribe registers a handler for a specific event type and returns a Subscription
	// handle that can be used to cancel later.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription) error

	// PublishAsync publishes in a separate goroutine and returns a channel that receives
	// the joined error (or nil) once delivery completes; then the channel is closed.
	PublishAsync(event Event) <-chan error

	// Subscribers returns the number of active subscriptions.
	Subscribers() int
}

// AnyEvent subscribes a handler to every event type.
const AnyEvent = "*"

// Event is an immutable message transported by the EventBus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

type (
	// EventHandler is invoked per delivered event.
	EventHandler func(event Event) error
)

// Subscription represents a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler from the bus. Multiple calls are safe.
	Cancel() error
}
