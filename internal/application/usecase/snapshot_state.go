package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/logging"
)

// ErrPersistenceAbandoned is returned when a snapshot does not fit even with
// its history dropped. Callers stop persisting for the rest of the session.
var ErrPersistenceAbandoned = errors.New("navigation persistence abandoned")

// SnapshotStateUseCase writes the navigation state to the durable slot.
type SnapshotStateUseCase struct {
	slot repository.StateSlot
	key  string
}

// NewSnapshotStateUseCase creates a new SnapshotStateUseCase.
func NewSnapshotStateUseCase(slot repository.StateSlot, key string) *SnapshotStateUseCase {
	return &SnapshotStateUseCase{slot: slot, key: key}
}

// SnapshotInput contains the state to persist.
type SnapshotInput struct {
	State entity.NavigationState
}

// SnapshotOutput describes what was written.
type SnapshotOutput struct {
	// Raw is the exact value stored in the slot.
	Raw string
	// Truncated is set when history had to be dropped to fit.
	Truncated bool
}

// Execute serializes the state and stores it. When the slot reports a quota
// failure the write is retried once with an empty history.
func (uc *SnapshotStateUseCase) Execute(ctx context.Context, input SnapshotInput) (*SnapshotOutput, error) {
	log := logging.FromContext(ctx)

	raw, err := navigation.Encode(input.State)
	if err != nil {
		return nil, fmt.Errorf("encode navigation state: %w", err)
	}

	log.Debug().
		Str("key", uc.key).
		Str("active_tab", string(input.State.ActiveTab)).
		Int("history_len", len(input.State.History)).
		Int("bytes", len(raw)).
		Msg("writing navigation snapshot")

	err = uc.slot.Set(ctx, uc.key, string(raw))
	if err == nil {
		return &SnapshotOutput{Raw: string(raw)}, nil
	}
	if !errors.Is(err, repository.ErrQuotaExceeded) {
		return nil, fmt.Errorf("write navigation snapshot: %w", err)
	}

	log.Warn().Err(err).Int("history_len", len(input.State.History)).Msg("snapshot over quota, retrying without history")

	trimmed := input.State.Clone()
	trimmed.History = []entity.HistoryEntry{}
	raw, err = navigation.Encode(trimmed)
	if err != nil {
		return nil, fmt.Errorf("encode navigation state: %w", err)
	}
	if err := uc.slot.Set(ctx, uc.key, string(raw)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceAbandoned, err)
	}

	return &SnapshotOutput{Raw: string(raw), Truncated: true}, nil
}
