// Package memory provides an in-process state slot shared through a Hub.
// Several slots attached to one hub behave like application instances
// sharing one origin.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/domain/repository"
)

// Hub is the shared storage and broadcast medium.
type Hub struct {
	mu       sync.RWMutex
	values   map[string]string
	maxBytes int
	subs     map[uint64]hubSub
	nextID   uint64
}

type hubSub struct {
	owner *Slot
	key   string
	fn    func(string)
}

// NewHub creates a hub. maxBytes of zero means unlimited.
func NewHub(maxBytes int) *Hub {
	return &Hub{
		values:   make(map[string]string),
		maxBytes: maxBytes,
		subs:     make(map[uint64]hubSub),
	}
}

// Slot is one instance's view of the hub.
type Slot struct {
	hub *Hub
}

var (
	_ repository.StateSlot = (*Slot)(nil)
	_ port.ChangeNotifier  = (*Slot)(nil)
)

// Attach returns a new instance view over the hub.
func (h *Hub) Attach() *Slot {
	return &Slot{hub: h}
}

// NewSlot returns a slot on a private hub.
func NewSlot(maxBytes int) *Slot {
	return NewHub(maxBytes).Attach()
}

func (s *Slot) Get(_ context.Context, key string) (string, bool, error) {
	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()
	v, ok := s.hub.values[key]
	return v, ok, nil
}

func (s *Slot) Set(_ context.Context, key, value string) error {
	h := s.hub
	if h.maxBytes > 0 && len(key)+len(value) > h.maxBytes {
		return fmt.Errorf("memory slot %q: %d bytes: %w", key, len(value), repository.ErrQuotaExceeded)
	}
	h.mu.Lock()
	h.values[key] = value
	h.mu.Unlock()

	h.broadcast(s, key, value)
	return nil
}

func (s *Slot) Remove(_ context.Context, key string) error {
	h := s.hub
	h.mu.Lock()
	_, existed := h.values[key]
	delete(h.values, key)
	h.mu.Unlock()

	if existed {
		h.broadcast(s, key, "")
	}
	return nil
}

// Subscribe reports changes made through other slots on the same hub.
func (s *Slot) Subscribe(_ context.Context, key string, fn func(raw string)) (func(), error) {
	h := s.hub
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = hubSub{owner: s, key: key, fn: fn}
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}, nil
}

// broadcast delivers synchronously, outside the hub lock.
func (h *Hub) broadcast(from *Slot, key, value string) {
	h.mu.RLock()
	var targets []func(string)
	for _, sub := range h.subs {
		if sub.owner != from && sub.key == key {
			targets = append(targets, sub.fn)
		}
	}
	h.mu.RUnlock()

	for _, fn := range targets {
		fn(value)
	}
}
