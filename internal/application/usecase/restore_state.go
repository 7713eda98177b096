package usecase

import (
	"context"

	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/logging"
)

// RestoreStateUseCase rehydrates the navigation state at startup.
type RestoreStateUseCase struct {
	slot       repository.StateSlot
	key        string
	tree       *entity.TabTree
	defaultTab entity.TabID
}

// NewRestoreStateUseCase creates a new RestoreStateUseCase.
func NewRestoreStateUseCase(
	slot repository.StateSlot,
	key string,
	tree *entity.TabTree,
	defaultTab entity.TabID,
) *RestoreStateUseCase {
	return &RestoreStateUseCase{
		slot:       slot,
		key:        key,
		tree:       tree,
		defaultTab: defaultTab,
	}
}

// RestoreOutput contains the state to start from.
type RestoreOutput struct {
	State entity.NavigationState
	// FromSnapshot is false when the default state was used.
	FromSnapshot bool
	// Raw is the stored value the state came from.
	Raw string
}

// Execute reads the slot and validates it against the tree. It never fails:
// a read error, an empty slot or an unusable snapshot all yield the default state.
func (uc *RestoreStateUseCase) Execute(ctx context.Context) *RestoreOutput {
	log := logging.FromContext(ctx)

	raw, ok, err := uc.slot.Get(ctx, uc.key)
	if err != nil {
		log.Warn().Err(err).Str("key", uc.key).Msg("failed to read navigation snapshot, using defaults")
		return uc.fallback()
	}
	if !ok {
		log.Debug().Str("key", uc.key).Msg("no navigation snapshot stored")
		return uc.fallback()
	}

	state, usable := uc.Validate(raw)
	if !usable || state.ActiveTab == "" {
		log.Info().Str("key", uc.key).Msg("stored navigation snapshot unusable, using defaults")
		return uc.fallback()
	}

	log.Info().
		Str("active_tab", string(state.ActiveTab)).
		Str("active_subtab", string(state.ActiveSubTab)).
		Int("history_len", len(state.History)).
		Msg("restored navigation state")

	return &RestoreOutput{State: state, FromSnapshot: true, Raw: raw}
}

// Validate runs raw through the tree validator. It reports false for input
// that is not a snapshot of this tree; a state with every tab closed is valid.
// Startup additionally falls back to the default when no tab is active.
func (uc *RestoreStateUseCase) Validate(raw string) (entity.NavigationState, bool) {
	return navigation.DecodeTabState([]byte(raw), uc.tree)
}

// Default returns the state a fresh instance starts from.
func (uc *RestoreStateUseCase) Default() entity.NavigationState {
	return navigation.DefaultState(uc.tree, uc.defaultTab)
}

func (uc *RestoreStateUseCase) fallback() *RestoreOutput {
	return &RestoreOutput{State: uc.Default()}
}
