package cqrs

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// ListenerFunc consumes a published event.
type ListenerFunc func(ctx context.Context, event Event) error

// WrapperListenerFunc observes every published wrapper, regardless of event
// name. Used for audit/observation concerns that want timing and captured
// context alongside the event itself.
type WrapperListenerFunc func(ctx context.Context, wrapper EventWrapper)

// Bus is the in-process event bus: a registry mapping concrete event names
// to listener lists. Listeners self-select by registering under the event
// name they care about, so publishing needs no reflection.
//
// Each listener runs isolated: a panic or error in one listener is logged
// and never aborts delivery to the rest of the batch.
type Bus struct {
	logger zerolog.Logger

	mu               sync.RWMutex
	listeners        map[string][]ListenerFunc
	wrapperListeners []WrapperListenerFunc
}

// NewBus creates an empty bus.
func NewBus(logger zerolog.Logger) *Bus {
	return &Bus{
		logger:    logger,
		listeners: make(map[string][]ListenerFunc),
	}
}

// Subscribe registers fn for events named eventName.
func (b *Bus) Subscribe(eventName string, fn ListenerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[eventName] = append(b.listeners[eventName], fn)
}

// SubscribeWrapper registers fn for every published wrapper.
func (b *Bus) SubscribeWrapper(fn WrapperListenerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.wrapperListeners = append(b.wrapperListeners, fn)
}

// Publish delivers the wrapper to all wrapper listeners, then the inner
// event to all listeners registered under its name. Both deliveries finish
// before Publish returns.
func (b *Bus) Publish(ctx context.Context, wrapper EventWrapper) {
	b.mu.RLock()
	wrapperListeners := b.wrapperListeners
	eventListeners := b.listeners[wrapper.Event.EventName()]
	b.mu.RUnlock()

	for _, fn := range wrapperListeners {
		b.deliverWrapper(ctx, fn, wrapper)
	}
	for _, fn := range eventListeners {
		b.deliverEvent(ctx, fn, wrapper.Event)
	}
}

func (b *Bus) deliverWrapper(ctx context.Context, fn WrapperListenerFunc, wrapper EventWrapper) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn().
				Str("event", wrapper.Event.EventName()).
				Interface("panic", r).
				Msg("wrapper listener panicked")
		}
	}()
	fn(ctx, wrapper)
}

func (b *Bus) deliverEvent(ctx context.Context, fn ListenerFunc, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Warn().
				Str("event", event.EventName()).
				Interface("panic", r).
				Msg("event listener panicked")
		}
	}()
	if err := fn(ctx, event); err != nil {
		b.logger.Warn().
			Str("event", event.EventName()).
			Err(err).
			Msg("event listener failed")
	}
}
