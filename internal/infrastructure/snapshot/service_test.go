package snapshot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/application/port"
	"github.com/bnema/tabnav/internal/application/store"
	"github.com/bnema/tabnav/internal/application/usecase"
	"github.com/bnema/tabnav/internal/domain/entity"
	"github.com/bnema/tabnav/internal/domain/navigation"
	"github.com/bnema/tabnav/internal/domain/repository"
	repomocks "github.com/bnema/tabnav/internal/domain/repository/mocks"
	"github.com/bnema/tabnav/internal/infrastructure/persistence/memory"
)

const (
	testKey      = "tabnav_state"
	testDebounce = 30 * time.Millisecond
)

func testTree() *entity.TabTree {
	return entity.MustTabTree([]entity.TabConfig{
		{ID: "home", Label: "Home"},
		{ID: "kpi", Label: "KPI", SubTabs: []entity.SubTabConfig{{ID: "kpi-table", Label: "Table"}}},
		{ID: "reports", Label: "Reports"},
	})
}

// countingSlot records every Set it forwards.
type countingSlot struct {
	repository.StateSlot
	mu   sync.Mutex
	sets []string
}

func (c *countingSlot) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	c.sets = append(c.sets, value)
	c.mu.Unlock()
	return c.StateSlot.Set(ctx, key, value)
}

func (c *countingSlot) writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sets...)
}

type instance struct {
	store   *store.Store
	service *Service
}

func newInstance(t *testing.T, slot repository.StateSlot, notifier port.ChangeNotifier) instance {
	t.Helper()
	ctx := context.Background()
	tree := testTree()

	restoreUC := usecase.NewRestoreStateUseCase(slot, testKey, tree, "home")
	out := restoreUC.Execute(ctx)

	st := store.New(ctx, navigation.NewReducer(tree, restoreUC.Default(), 0), out.State, nil)
	svc := NewService(Config{
		Store:    st,
		Snapshot: usecase.NewSnapshotStateUseCase(slot, testKey),
		Restore:  restoreUC,
		End:      usecase.NewEndSessionUseCase(slot, testKey),
		Notifier: notifier,
		Key:      testKey,
		Debounce: testDebounce,
	})
	require.NoError(t, svc.Start(ctx, ""))
	t.Cleanup(func() {
		_ = svc.Stop(context.Background())
		st.Dispose()
	})
	return instance{store: st, service: svc}
}

func TestService_CoalescesWritesWithinDebounce(t *testing.T) {
	slot := &countingSlot{StateSlot: memory.NewSlot(0)}
	inst := newInstance(t, slot, nil)

	inst.store.Dispatch(entity.SetActiveTab("kpi", "kpi-table"))
	inst.store.Dispatch(entity.SetActiveTab("reports", ""))

	require.Eventually(t, func() bool { return len(slot.writes()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(3 * testDebounce)
	writes := slot.writes()
	require.Len(t, writes, 1)

	persisted := navigation.ValidateTabState([]byte(writes[0]), testTree())
	assert.Equal(t, entity.TabID("reports"), persisted.ActiveTab)
	assert.Len(t, persisted.History, 2)
}

func TestService_SkipsUnchangedState(t *testing.T) {
	slot := &countingSlot{StateSlot: memory.NewSlot(0)}
	inst := newInstance(t, slot, nil)

	inst.store.Dispatch(entity.SetActiveTab("kpi", ""))
	require.Eventually(t, func() bool { return len(slot.writes()) == 1 }, time.Second, 5*time.Millisecond)

	inst.store.Dispatch(entity.OpenTab("ghost"))
	time.Sleep(3 * testDebounce)
	assert.Len(t, slot.writes(), 1, "rejected action leaves nothing new to write")
}

func TestService_AbandonsPersistenceOnRepeatedQuota(t *testing.T) {
	slot := repomocks.NewMockStateSlot(t)
	slot.EXPECT().Get(mock.Anything, testKey).Return("", false, nil)
	slot.EXPECT().Set(mock.Anything, testKey, mock.Anything).Return(repository.ErrQuotaExceeded).Times(2)

	inst := newInstance(t, slot, nil)

	inst.store.Dispatch(entity.SetActiveTab("kpi", ""))
	require.Eventually(t, inst.service.Abandoned, time.Second, 5*time.Millisecond)

	inst.store.Dispatch(entity.SetActiveTab("reports", ""))
	time.Sleep(3 * testDebounce)
	require.NoError(t, inst.service.SaveNow(context.Background()))

	assert.Equal(t, entity.TabID("reports"), inst.store.State().ActiveTab, "navigation keeps working in memory")
}

func TestService_SyncsSiblingInstances(t *testing.T) {
	hub := memory.NewHub(0)
	slotA, slotB := hub.Attach(), hub.Attach()
	a := newInstance(t, slotA, slotA)
	b := newInstance(t, slotB, slotB)

	a.store.Dispatch(entity.SetActiveTab("kpi", "kpi-table"))

	require.Eventually(t, func() bool {
		return b.store.State().ActiveSubTab == "kpi-table"
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, a.store.State().History, b.store.State().History)

	b.store.Dispatch(entity.PinTab("reports"))
	require.Eventually(t, func() bool {
		return a.store.State().IsPinned("reports")
	}, time.Second, 5*time.Millisecond)
}

func TestService_IgnoresUnusableSiblingWrites(t *testing.T) {
	hub := memory.NewHub(0)
	slot, foreign := hub.Attach(), hub.Attach()
	inst := newInstance(t, slot, slot)
	inst.store.Dispatch(entity.SetActiveTab("kpi", ""))

	for _, raw := range []string{`{"activeTab":"ghost-tab"}`, "not json", "[1,2]"} {
		require.NoError(t, foreign.Set(context.Background(), testKey, raw))
		assert.Equal(t, entity.TabID("kpi"), inst.store.State().ActiveTab, raw)
	}
}

func TestService_SyncsStateWithEveryTabClosed(t *testing.T) {
	hub := memory.NewHub(0)
	slotA, slotB := hub.Attach(), hub.Attach()
	a := newInstance(t, slotA, slotA)
	b := newInstance(t, slotB, slotB)

	a.store.Dispatch(entity.PinTab("reports"))
	require.Eventually(t, func() bool {
		return b.store.State().IsPinned("reports")
	}, time.Second, 5*time.Millisecond)

	a.store.Dispatch(entity.CloseTab("home"))
	require.Empty(t, a.store.State().OpenTabs)

	require.Eventually(t, func() bool {
		state := b.store.State()
		return len(state.OpenTabs) == 0 && state.ActiveTab == ""
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, a.store.State().PinnedTabs, b.store.State().PinnedTabs)
}

func TestService_SiblingSessionEndIsNotWrittenBack(t *testing.T) {
	ctx := context.Background()
	hub := memory.NewHub(0)
	slotA, slotB := hub.Attach(), hub.Attach()
	countedB := &countingSlot{StateSlot: slotB}
	a := newInstance(t, slotA, slotA)
	b := newInstance(t, countedB, slotB)

	a.store.Dispatch(entity.SetActiveTab("kpi", "kpi-table"))
	require.Eventually(t, func() bool {
		return b.store.State().ActiveSubTab == "kpi-table"
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, a.service.EndSession(ctx))

	state := b.store.State()
	assert.Equal(t, entity.TabID("home"), state.ActiveTab)
	assert.Empty(t, state.History)

	time.Sleep(5 * testDebounce)
	_, ok, err := slotA.Get(ctx, testKey)
	require.NoError(t, err)
	assert.False(t, ok, "the slot stays removed")
	assert.Empty(t, countedB.writes())

	b.store.Dispatch(entity.SetActiveTab("reports", ""))
	require.Eventually(t, func() bool {
		return a.store.State().ActiveTab == "reports"
	}, time.Second, 5*time.Millisecond)
}

func TestService_EndSessionResetsAndClears(t *testing.T) {
	base := memory.NewSlot(0)
	slot := &countingSlot{StateSlot: base}
	inst := newInstance(t, slot, nil)

	inst.store.Dispatch(entity.SetActiveTab("kpi", ""))
	require.NoError(t, inst.service.SaveNow(context.Background()))
	require.Len(t, slot.writes(), 1)

	require.NoError(t, inst.service.EndSession(context.Background()))

	reset := inst.store.State()
	assert.Equal(t, entity.TabID("home"), reset.ActiveTab)
	assert.Equal(t, []entity.TabID{"home"}, reset.OpenTabs)
	assert.Empty(t, reset.History)
	_, ok, err := base.Get(context.Background(), testKey)
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(3 * testDebounce)
	assert.Len(t, slot.writes(), 1, "the reset is not written back")
}

func TestService_StopFlushesPendingWrite(t *testing.T) {
	base := memory.NewSlot(0)
	inst := newInstance(t, base, nil)

	inst.store.Dispatch(entity.SetActiveTab("reports", ""))
	require.NoError(t, inst.service.Stop(context.Background()))

	raw, ok, err := base.Get(context.Background(), testKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entity.TabID("reports"), navigation.ValidateTabState([]byte(raw), testTree()).ActiveTab)
}
