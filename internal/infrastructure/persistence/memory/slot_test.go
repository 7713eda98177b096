package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/domain/repository"
)

func TestSlot_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	slot := NewSlot(0)

	_, ok, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Set(ctx, "k", `{"activeTab":"kpi"}`))
	v, ok, err := slot.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"activeTab":"kpi"}`, v)

	require.NoError(t, slot.Remove(ctx, "k"))
	require.NoError(t, slot.Remove(ctx, "k"))
	_, ok, _ = slot.Get(ctx, "k")
	assert.False(t, ok)
}

func TestSlot_Quota(t *testing.T) {
	slot := NewSlot(8)
	err := slot.Set(context.Background(), "k", "0123456789")
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)
}

func TestHub_NotifiesSiblingsOnly(t *testing.T) {
	ctx := context.Background()
	hub := NewHub(0)
	a, b := hub.Attach(), hub.Attach()

	var seenByA, seenByB []string
	_, err := a.Subscribe(ctx, "k", func(raw string) { seenByA = append(seenByA, raw) })
	require.NoError(t, err)
	unsub, err := b.Subscribe(ctx, "k", func(raw string) { seenByB = append(seenByB, raw) })
	require.NoError(t, err)

	require.NoError(t, a.Set(ctx, "k", "one"))
	require.NoError(t, a.Set(ctx, "other", "ignored"))
	require.NoError(t, b.Remove(ctx, "k"))
	unsub()
	require.NoError(t, a.Set(ctx, "k", "two"))

	assert.Equal(t, []string{""}, seenByA)
	assert.Equal(t, []string{"one"}, seenByB)
}
