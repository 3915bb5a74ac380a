package shared

import "context"

// EventHandler reacts to published domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types this handler wants. Empty means all.
	EventTypes() []string
}

// EventPublisher is the narrow interface services use to publish events
// after their transaction commits
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus adds subscription management on top of publishing
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler. With no explicit event types the
	// handler's own EventTypes() decides what it receives.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}
