// Package store owns the live navigation state of one application instance.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/tabnav/internal/application/eventbus"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/logging"
)

// Listener observes every dispatch, whether or not the state changed.
type Listener func(prev, next entity.NavigationState)

type listener struct {
	id uint64
	fn Listener
}

// Store wraps the reducer with a lock, an event bus and listeners.
// A dispatch reduces under the lock; the event and listeners fire after it is
// released, so handlers may dispatch again.
type Store struct {
	ctx     context.Context
	reducer navigation.Reducer
	bus     *eventbus.Bus
	now     func() time.Time

	mu        sync.Mutex
	state     entity.NavigationState
	listeners []listener
	nextID    uint64
	disposed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock that stamps actions.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store starting from initial. bus may be nil.
func New(ctx context.Context, reducer navigation.Reducer, initial entity.NavigationState, bus *eventbus.Bus, opts ...Option) *Store {
	if bus == nil {
		bus = eventbus.New()
	}
	s := &Store{
		ctx:     logging.WithComponent(ctx, "store"),
		reducer: reducer,
		bus:     bus,
		now:     time.Now,
		state:   initial.Clone(),
	}
	for _, opt := range opts {
		opt(s)
	}

	logging.FromContext(s.ctx).Debug().
		Str("active_tab", string(initial.ActiveTab)).
		Int("tab_count", reducer.Tree.Len()).
		Msg("creating navigation store")

	return s
}

// Dispatch applies an action. Actions without a timestamp are stamped with
// the store clock. Dispatch on a disposed store is ignored.
func (s *Store) Dispatch(action entity.Action) {
	if action.At == 0 {
		action.At = s.now().UnixMilli()
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	prev := s.state
	next, ev := s.reducer.Reduce(prev, action)
	s.state = next
	listeners := s.listeners
	s.mu.Unlock()

	log := logging.FromContext(s.ctx)
	log.Trace().
		Str("action", string(action.Type)).
		Str("active_tab", string(next.ActiveTab)).
		Str("active_subtab", string(next.ActiveSubTab)).
		Msg("dispatched")

	if ev != nil {
		s.bus.Emit(s.ctx, *ev)
	}
	for _, l := range listeners {
		s.notify(l.fn, prev, next)
	}
}

func (s *Store) notify(fn Listener, prev, next entity.NavigationState) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(s.ctx).Error().Str("panic", fmt.Sprint(r)).Msg("state listener panicked")
		}
	}()
	fn(prev.Clone(), next.Clone())
}

// State returns a copy of the current state.
func (s *Store) State() entity.NavigationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn for every dispatch. The returned func removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				next := make([]listener, 0, len(s.listeners)-1)
				next = append(next, s.listeners[:i]...)
				s.listeners = append(next, s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Events returns the bus the store emits on.
func (s *Store) Events() *eventbus.Bus {
	return s.bus
}

// Tree returns the tab tree the store validates against.
func (s *Store) Tree() *entity.TabTree {
	return s.reducer.Tree
}

// Initial returns the state RESET_STATE restores.
func (s *Store) Initial() entity.NavigationState {
	return s.reducer.Initial.Clone()
}

// ActiveTabConfig returns the config of the active tab.
func (s *Store) ActiveTabConfig() (entity.TabConfig, bool) {
	st := s.State()
	if st.ActiveTab == "" {
		return entity.TabConfig{}, false
	}
	return s.reducer.Tree.Tab(st.ActiveTab)
}

// ActiveSubTabConfig returns the config of the active sub-tab.
func (s *Store) ActiveSubTabConfig() (entity.SubTabConfig, bool) {
	st := s.State()
	if st.ActiveSubTab == "" {
		return entity.SubTabConfig{}, false
	}
	return s.reducer.Tree.SubTab(st.ActiveSubTab)
}

// CanGoBack reports whether GO_BACK would change the state.
func (s *Store) CanGoBack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.CanGoBack()
}

// IsActive reports whether tab is the active tab. Hosts use it to decide
// which body to mount.
func (s *Store) IsActive(tab entity.TabID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tab != "" && s.state.ActiveTab == tab
}

// Emit publishes a host-originated event such as TAB_LOADED on the store's bus.
func (s *Store) Emit(ev entity.Event) {
	if ev.Timestamp == 0 {
		ev.Timestamp = s.now().UnixMilli()
	}
	s.bus.Emit(s.ctx, ev)
}

// Dispose drops listeners and handlers. Further dispatches are ignored.
func (s *Store) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.listeners = nil
	s.mu.Unlock()
	s.bus.Clear()

	logging.FromContext(s.ctx).Debug().Msg("navigation store disposed")
}
