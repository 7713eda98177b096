package sqlite_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/domain/repository"
	"github.com/bnema/tabnav/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabnav/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openRepo(t *testing.T, dbPath, instanceID string, maxBytes int64) *sqlite.StateSlotRepository {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return sqlite.NewStateSlotRepository(db, instanceID, maxBytes, 20*time.Millisecond)
}

func TestNewConnection_RunsMigrations(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "nested", sqlite.DatabaseName))
	require.NoError(t, err)
	defer func() { _ = sqlite.Close(db) }()

	version, err := sqlite.GetMigrationStatus(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	_, err = sqlite.NewConnection(ctx, "")
	assert.Error(t, err)
}

func TestStateSlotRepository_RoundTrip(t *testing.T) {
	ctx := testCtx()
	repo := openRepo(t, filepath.Join(t.TempDir(), sqlite.DatabaseName), "a", 0)

	_, ok, err := repo.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "tabnav_state", `{"activeTab":"analysis"}`))
	require.NoError(t, repo.Set(ctx, "tabnav_state", `{"activeTab":"kpi"}`))

	value, ok, err := repo.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"activeTab":"kpi"}`, value)

	require.NoError(t, repo.Remove(ctx, "tabnav_state"))
	require.NoError(t, repo.Remove(ctx, "tabnav_state"))
	_, ok, err = repo.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Set(ctx, "tabnav_state", `{}`))
	_, ok, err = repo.Get(ctx, "tabnav_state")
	require.NoError(t, err)
	assert.True(t, ok, "a write after removal revives the slot")
}

func TestStateSlotRepository_MaxBytes(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), sqlite.DatabaseName), "a", 10)
	err := repo.Set(testCtx(), "k", `{"history":[]}`)
	assert.ErrorIs(t, err, repository.ErrQuotaExceeded)
}

func TestStateSlotRepository_SubscribeSkipsOwnWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(testCtx())
	defer cancel()
	dbPath := filepath.Join(t.TempDir(), sqlite.DatabaseName)

	self := openRepo(t, dbPath, "self", 0)
	sibling := openRepo(t, dbPath, "sibling", 0)

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
	defer unsubscribe()

	last := func() (string, int) {
		mu.Lock()
		defer mu.Unlock()
		if len(seen) == 0 {
			return "", 0
		}
		return seen[len(seen)-1], len(seen)
	}

	require.NoError(t, self.Set(ctx, "k", "mine"))
	require.NoError(t, sibling.Set(ctx, "k", "theirs"))
	require.Eventually(t, func() bool {
		v, n := last()
		return n > 0 && v == "theirs"
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, sibling.Remove(ctx, "k"))
	require.Eventually(t, func() bool {
		v, n := last()
		return n > 1 && v == ""
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.NotContains(t, seen, "mine")
	mu.Unlock()
}
