package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"hireflow_backend/platform/logger"
)

// asyncHandlerTimeout bounds detached handler execution so a stuck
// collaborator cannot leak goroutines forever.
const asyncHandlerTimeout = 30 * time.Second

// InMemoryBus is a simple in-process event bus. Publish runs handlers on
// detached goroutines; handler failures are logged and never propagate to
// the publisher, so side effects cannot fail the primary operation.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all subscribers asynchronously.
// The caller's context is not reused: the triggering request may complete
// (and its context be cancelled) before handlers finish.
func (b *InMemoryBus) Publish(_ context.Context, event Event) {
	b.mu.RLock()
	subscribers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, h := range subscribers {
		handler := h
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), asyncHandlerTimeout)
			defer cancel()
			if err := handler.Handle(ctx, event); err != nil && b.log != nil {
				b.log.Error("event handler failed",
					"event", event.EventName(),
					"error", err,
				)
			}
		}()
	}
}

// PublishSync dispatches the event and waits for all handlers, returning
// the combined error. Used by workers that need at-least-once semantics.
func (b *InMemoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	subscribers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	var combined []error
	for _, handler := range subscribers {
		if err := handler.Handle(ctx, event); err != nil {
			combined = append(combined, err)
		}
	}
	return errors.Join(combined...)
}

var _ Bus = (*InMemoryBus)(nil)
