// Package snapshot persists navigation state and keeps sibling instances in sync.
package snapshot

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/application/store"
	"github.com/bnema/tabnav/internal/application/usecase"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/logging"
)

// DefaultDebounce is the write coalescing window.
const DefaultDebounce = 500 * time.Millisecond

// Service handles debounced navigation snapshots and cross-instance sync.
type Service struct {
	store      *store.Store
	snapshotUC *usecase.SnapshotStateUseCase
	restoreUC  *usecase.RestoreStateUseCase
	endUC      *usecase.EndSessionUseCase
	notifier   port.ChangeNotifier
	key        string
	interval   time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	dirty      bool
	abandoned  bool   // a write failed even without history; stop writing
	suppressed bool   // set while applying a reset or sibling state
	lastSynced string // last raw value written or received
	unsubs     []func()
	ctx        context.Context
	cancel     context.CancelFunc
}

// Config wires a Service.
type Config struct {
	Store    *store.Store
	Snapshot *usecase.SnapshotStateUseCase
	Restore  *usecase.RestoreStateUseCase
	End      *usecase.EndSessionUseCase
	// Notifier may be nil when the backend cannot observe siblings.
	Notifier port.ChangeNotifier
	Key      string
	Debounce time.Duration
}

// NewService creates a new snapshot service.
func NewService(cfg Config) *Service {
	interval := cfg.Debounce
	if interval <= 0 {
		interval = DefaultDebounce
	}
	return &Service{
		store:      cfg.Store,
		snapshotUC: cfg.Snapshot,
		restoreUC:  cfg.Restore,
		endUC:      cfg.End,
		notifier:   cfg.Notifier,
		key:        cfg.Key,
		interval:   interval,
	}
}

// Start begins watching the store and, when a notifier is set, sibling writes.
// seed is the raw value the state was restored from, if any.
func (s *Service) Start(ctx context.Context, seed string) error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(logging.WithComponent(ctx, "snapshot"))
	s.lastSynced = seed
	runCtx := s.ctx
	s.mu.Unlock()

	unsubStore := s.store.Subscribe(func(_, _ entity.NavigationState) {
		s.MarkDirty()
	})
	s.addUnsub(unsubStore)

	if s.notifier != nil {
		unsub, err := s.notifier.Subscribe(runCtx, s.key, s.applyRemote)
		if err != nil {
			return err
		}
		s.addUnsub(unsub)
	}

	logging.FromContext(runCtx).Debug().
		Dur("interval", s.interval).
		Bool("sync", s.notifier != nil).
		Msg("snapshot service started")
	return nil
}

func (s *Service) addUnsub(fn func()) {
	s.mu.Lock()
	s.unsubs = append(s.unsubs, fn)
	s.mu.Unlock()
}

// Stop stops the service and saves final state.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	unsubs := s.unsubs
	s.unsubs = nil
	if s.cancel != nil {
		s.cancel()
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	for _, fn := range unsubs {
		fn()
	}

	// Final save on shutdown
	return s.SaveNow(ctx)
}

// MarkDirty signals that state has changed.
// Debounces saves so rapid navigation coalesces into one write.
func (s *Service) MarkDirty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.abandoned || s.suppressed {
		return
	}
	s.dirty = true

	// Reset or create timer
	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.interval, func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()

		if ctx == nil || ctx.Err() != nil {
			return
		}

		if err := s.saveSnapshot(ctx); err != nil {
			logging.FromContext(ctx).Error().Err(err).Msg("failed to save navigation snapshot")
		}
	})
}

// SaveNow forces an immediate save of pending changes.
func (s *Service) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	dirty := s.dirty
	s.mu.Unlock()

	if !dirty {
		return nil
	}

	return s.saveSnapshot(ctx)
}

// Abandoned reports whether persistence was given up for this session.
func (s *Service) Abandoned() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.abandoned
}

// saveSnapshot serializes the state current at call time.
func (s *Service) saveSnapshot(ctx context.Context) error {
	s.mu.Lock()
	if s.abandoned {
		s.dirty = false
		s.mu.Unlock()
		return nil
	}
	s.dirty = false
	last := s.lastSynced
	s.mu.Unlock()

	state := s.store.State()
	if raw, err := navigation.Encode(state); err == nil && string(raw) == last {
		return nil
	}

	out, err := s.snapshotUC.Execute(ctx, usecase.SnapshotInput{State: state})
	if err != nil {
		if errors.Is(err, usecase.ErrPersistenceAbandoned) {
			s.mu.Lock()
			s.abandoned = true
			s.mu.Unlock()
			logging.FromContext(ctx).Warn().Err(err).Msg("navigation persistence disabled for this session")
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.lastSynced = out.Raw
	s.mu.Unlock()
	return nil
}

// applyRemote replaces the local state with a sibling's write.
// Last writer wins; a removed slot resets to the default state. Neither is
// written back, and a pending local save is dropped.
func (s *Service) applyRemote(raw string) {
	s.mu.Lock()
	ctx := s.ctx
	if raw == s.lastSynced {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if ctx == nil || ctx.Err() != nil {
		return
	}
	log := logging.FromContext(ctx)

	state := s.restoreUC.Default()
	if raw != "" {
		validated, usable := s.restoreUC.Validate(raw)
		if !usable {
			log.Debug().Msg("ignoring unusable sibling snapshot")
			return
		}
		state = validated
	}

	log.Debug().
		Str("active_tab", string(state.ActiveTab)).
		Str("active_subtab", string(state.ActiveSubTab)).
		Bool("removed", raw == "").
		Msg("applying sibling navigation state")

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.dirty = false
	s.suppressed = true
	s.mu.Unlock()

	s.store.Dispatch(entity.RestoreState(state))

	synced := raw
	if raw == "" {
		encoded, _ := navigation.Encode(s.store.State())
		synced = string(encoded)
	}
	s.mu.Lock()
	s.suppressed = false
	s.lastSynced = synced
	s.mu.Unlock()
}

// EndSession resets the store to its initial state and clears the slot.
// The reset itself is not written back.
func (s *Service) EndSession(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.dirty = false
	s.suppressed = true
	s.mu.Unlock()

	s.store.Dispatch(entity.ResetState())

	raw, _ := navigation.Encode(s.store.State())
	s.mu.Lock()
	s.suppressed = false
	s.lastSynced = string(raw)
	s.mu.Unlock()

	return s.endUC.Execute(ctx)
}
