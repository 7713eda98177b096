// Package eventbus fans navigation events out to subscribers.
package eventbus

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/logging"
)

// Handler receives one event. Handlers run on the dispatching goroutine.
type Handler func(ctx context.Context, ev entity.Event)

// SubscriptionID identifies one handler registration for Off.
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus is a synchronous, in-process event bus.
// Handlers for a type run in subscription order. A panicking handler is
// logged and skipped; the remaining handlers still run.
type Bus struct {
	mu       sync.RWMutex
	handlers map[entity.EventType][]subscription
	nextID   SubscriptionID
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{handlers: make(map[entity.EventType][]subscription)}
}

// On subscribes handler to events of type t.
// The returned func unsubscribes it and is safe to call more than once.
func (b *Bus) On(t entity.EventType, handler Handler) (off func()) {
	id := b.Subscribe(t, handler)
	var once sync.Once
	return func() {
		once.Do(func() { b.Off(t, id) })
	}
}

// Subscribe is On for callers that keep a token and unsubscribe with Off.
func (b *Bus) Subscribe(t entity.EventType, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.handlers[t] = append(b.handlers[t], subscription{id: b.nextID, handler: handler})
	return b.nextID
}

// Once subscribes handler for a single delivery.
func (b *Bus) Once(t entity.EventType, handler Handler) (off func()) {
	var (
		fired  sync.Once
		cancel func()
	)
	cancel = b.On(t, func(ctx context.Context, ev entity.Event) {
		fired.Do(func() {
			cancel()
			handler(ctx, ev)
		})
	})
	return cancel
}

// Off removes the handler registered under id for type t and reports
// whether it was still subscribed.
func (b *Bus) Off(t entity.EventType, id SubscriptionID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[t]
	for i, s := range subs {
		if s.id != id {
			continue
		}
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, t)
		} else {
			b.handlers[t] = next
		}
		return true
	}
	return false
}

// Emit delivers ev to every handler subscribed to its type.
// Handlers subscribed or removed during delivery take effect on the next Emit.
func (b *Bus) Emit(ctx context.Context, ev entity.Event) {
	b.mu.RLock()
	subs := b.handlers[ev.Type]
	b.mu.RUnlock()

	for _, s := range subs {
		b.deliver(ctx, s.handler, ev)
	}
}

func (b *Bus) deliver(ctx context.Context, handler Handler, ev entity.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().
				Str("event", string(ev.Type)).
				Str("tab_id", string(ev.TabID)).
				Str("panic", fmt.Sprint(r)).
				Msg("event handler panicked")
		}
	}()
	handler(ctx, ev)
}

// Clear removes every handler.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.handlers = make(map[entity.EventType][]subscription)
	b.mu.Unlock()
}

// HandlerCount returns the number of handlers subscribed to t.
func (b *Bus) HandlerCount(t entity.EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}
