package usecase

import (
	"context"
	"fmt"

	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/logging"
)

// EndSessionUseCase clears the durable slot when the user's session ends.
type EndSessionUseCase struct {
	slot repository.StateSlot
	key  string
}

// NewEndSessionUseCase creates a new EndSessionUseCase.
func NewEndSessionUseCase(slot repository.StateSlot, key string) *EndSessionUseCase {
	return &EndSessionUseCase{slot: slot, key: key}
}

// Execute removes the stored snapshot.
func (uc *EndSessionUseCase) Execute(ctx context.Context) error {
	logging.FromContext(ctx).Info().Str("key", uc.key).Msg("clearing navigation snapshot")

	if err := uc.slot.Remove(ctx, uc.key); err != nil {
		return fmt.Errorf("remove navigation snapshot: %w", err)
	}
	return nil
}
