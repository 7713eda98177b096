package file_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/infrastructure/persistence/file"
)

func TestSlot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	slot, err := file.NewSlot(t.TempDir(), 0)
	require.NoError(t, err)

	_, ok, err := slot.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, slot.Set(ctx, "tabnav_state", `{"activeTab":"kpi"}`))
	v, ok, err := slot.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"activeTab":"kpi"}`, v)

	info, err := os.Stat(slot.Path("tabnav_state"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, slot.Remove(ctx, "tabnav_state"))
	require.NoError(t, slot.Remove(ctx, "tabnav_state"))
	_, ok, err = slot.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSlot_KeyIsSanitized(t *testing.T) {
	dir := t.TempDir()
	slot, err := file.NewSlot(dir, 0)
	require.NoError(t, err)

	assert.Equal(t, dir+"/_.._etc_passwd.json", slot.Path("../../etc/passwd"))
}

func TestSlot_MaxBytesIsQuota(t *testing.T) {
	slot, err := file.NewSlot(t.TempDir(), 16)
	require.NoError(t, err)

	err = slot.Set(context.Background(), "k", `{"history":[1,2,3,4,5,6,7,8]}`)
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)

	_, ok, err := slot.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok, "failed write leaves nothing behind")
}

func TestSlot_SubscribeSeesOtherProcessWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	dir := t.TempDir()

	self, err := file.NewSlot(dir, 0)
	require.NoError(t, err)
	sibling, err := file.NewSlot(dir, 0)
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		seen []string
	)
	unsubscribe, err := self.Subscribe(ctx, "k", func(raw string) {
		mu.Lock()
		seen = append(seen, raw)
		mu.Unlock()
	})
	require.NoError(t, err)
	t.Cleanup(unsubscribe)

	require.NoError(t, self.Set(ctx, "k", "mine"))
	require.NoError(t, sibling.Set(ctx, "k", "theirs"))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == "theirs"
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.NotContains(t, seen, "mine")
	mu.Unlock()

	require.NoError(t, sibling.Remove(ctx, "k"))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen[len(seen)-1] == ""
	}, 2*time.Second, 10*time.Millisecond)
}
