// Package events provides the in-process event bus used for decoupled
// communication between modules. It carries no business logic.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName uniquely identifies the event type and is the
	// subscription key.
	EventName() string
	// OccurredAt reports when the event happened.
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events. Embed it and rely on
// NewBaseEvent for the timestamp.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a single type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes and subscribes domain events.
type Bus interface {
	// Publish delivers an event to every handler subscribed to its name.
	// Handlers run asynchronously.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers an event and waits for all handlers, joining
	// their errors.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an EventName value.
	Subscribe(eventName string, handler Handler)
}
