package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/domain/entity"
)

func testTree(t *testing.T) *entity.TabTree {
	t.Helper()
	tree, err := entity.NewTabTree([]entity.TabConfig{
		{ID: "home", Label: "Home"},
		{ID: "analysis", Label: "Analysis", SubTabs: []entity.SubTabConfig{
			{ID: "analysis-data", Label: "Data"},
			{ID: "analysis-charts", Label: "Charts"},
			{ID: "analysis-sensitivity", Label: "Sensitivity"},
		}},
		{ID: "admin", Label: "Admin", Disabled: true},
		{ID: "reports", Label: "Reports"},
	})
	require.NoError(t, err)
	return tree
}

func testReducer(t *testing.T) Reducer {
	tree := testTree(t)
	return NewReducer(tree, DefaultState(tree, "home"), 0)
}

func reduceAll(r Reducer, state entity.NavigationState, actions ...entity.Action) entity.NavigationState {
	for i, a := range actions {
		a.At = int64(1000 + i)
		state, _ = r.Reduce(state, a)
	}
	return state
}

func TestReduce_SetActiveTab(t *testing.T) {
	r := testReducer(t)
	start := r.Initial.Clone()

	action := entity.SetActiveTab("analysis", "analysis-charts")
	action.At = 42
	next, ev := r.Reduce(start, action)

	assert.Equal(t, entity.TabID("analysis"), next.ActiveTab)
	assert.Equal(t, entity.SubTabID("analysis-charts"), next.ActiveSubTab)
	assert.Equal(t, entity.SubTabID("analysis-charts"), next.LastActiveSubTabs["analysis"])
	require.Len(t, next.History, 1)
	assert.Equal(t, entity.HistoryEntry{TabID: "analysis", SubTabID: "analysis-charts", Timestamp: 42}, next.History[0])

	require.NotNil(t, ev)
	assert.Equal(t, entity.EventTabActivated, ev.Type)
	assert.Equal(t, entity.TabID("analysis"), ev.TabID)
	assert.Equal(t, entity.SubTabID("analysis-charts"), ev.SubTabID)
	assert.Equal(t, int64(42), ev.Timestamp)

	// input untouched
	assert.Empty(t, start.History)
	assert.Empty(t, start.LastActiveSubTabs)
}

func TestReduce_SetActiveTabWithoutSubTabKeepsMemory(t *testing.T) {
	r := testReducer(t)
	state := reduceAll(r, r.Initial,
		entity.SetActiveTab("analysis", "analysis-data"),
		entity.SetActiveTab("home", ""),
		entity.SetActiveTab("analysis", ""),
	)

	assert.Equal(t, entity.TabID("analysis"), state.ActiveTab)
	assert.Empty(t, state.ActiveSubTab)
	assert.Equal(t, entity.SubTabID("analysis-data"), state.LastActiveSubTabs["analysis"])
	assert.Len(t, state.History, 3)
}

func TestReduce_RejectsUnknownReferences(t *testing.T) {
	r := testReducer(t)

	tests := []struct {
		name   string
		state  entity.NavigationState
		action entity.Action
	}{
		{"unknown tab", r.Initial, entity.SetActiveTab("ghost", "")},
		{"sub-tab of another parent", r.Initial, entity.SetActiveTab("home", "analysis-data")},
		{"sub-tab without active tab", entity.NewNavigationState(), entity.SetActiveSubTab("analysis-data")},
		{"sub-tab outside active tab", r.Initial, entity.SetActiveSubTab("analysis-data")},
		{"open unknown", r.Initial, entity.OpenTab("ghost")},
		{"open already open", r.Initial, entity.OpenTab("home")},
		{"close not open", r.Initial, entity.CloseTab("reports")},
		{"unpin not pinned", r.Initial, entity.UnpinTab("home")},
		{"reorder not a permutation", r.Initial, entity.ReorderTabs([]entity.TabID{"home", "ghost"})},
		{"reorder empty", r.Initial, entity.ReorderTabs(nil)},
		{"go back without history", r.Initial, entity.GoBack()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ev := r.Reduce(tt.state, tt.action)
			assert.Equal(t, tt.state, next)
			assert.Nil(t, ev)
		})
	}
}

func TestReduce_SetActiveSubTab(t *testing.T) {
	r := testReducer(t)
	state := reduceAll(r, r.Initial, entity.SetActiveTab("analysis", ""))

	action := entity.SetActiveSubTab("analysis-sensitivity")
	action.At = 7
	next, ev := r.Reduce(state, action)

	assert.Equal(t, entity.SubTabID("analysis-sensitivity"), next.ActiveSubTab)
	assert.Equal(t, entity.SubTabID("analysis-sensitivity"), next.LastActiveSubTabs["analysis"])
	assert.Len(t, next.History, len(state.History), "sub-tab activation does not push history")
	require.NotNil(t, ev)
	assert.Equal(t, entity.EventSubTabActivated, ev.Type)
	assert.Equal(t, entity.TabID("analysis"), ev.TabID)
}

func TestReduce_GoBack(t *testing.T) {
	r := testReducer(t)
	state := reduceAll(r, r.Initial,
		entity.SetActiveTab("analysis", "analysis-charts"),
		entity.SetActiveTab("reports", ""),
	)

	next, ev := r.Reduce(state, entity.GoBack())
	assert.Nil(t, ev)
	assert.Equal(t, entity.TabID("analysis"), next.ActiveTab)
	assert.Equal(t, entity.SubTabID("analysis-charts"), next.ActiveSubTab)
	assert.Len(t, next.History, 1)

	again, _ := r.Reduce(next, entity.GoBack())
	assert.Equal(t, next, again, "single entry history cannot go back")
}

func TestReduce_OpenCloseTabs(t *testing.T) {
	r := testReducer(t)
	state := reduceAll(r, r.Initial,
		entity.OpenTab("analysis"),
		entity.OpenTab("reports"),
		entity.SetActiveTab("analysis", "analysis-data"),
	)
	assert.Equal(t, []entity.TabID{"home", "analysis", "reports"}, state.OpenTabs)

	next, ev := r.Reduce(state, entity.CloseTab("analysis"))
	require.NotNil(t, ev)
	assert.Equal(t, entity.EventTabClosed, ev.Type)
	assert.Equal(t, []entity.TabID{"home", "reports"}, next.OpenTabs)
	assert.Equal(t, entity.TabID("reports"), next.ActiveTab, "closing active tab activates last remaining open tab")
	assert.Empty(t, next.ActiveSubTab)
	assert.Equal(t, entity.SubTabID("analysis-data"), next.LastActiveSubTabs["analysis"])

	inactive, _ := r.Reduce(next, entity.CloseTab("home"))
	assert.Equal(t, entity.TabID("reports"), inactive.ActiveTab)

	last, _ := r.Reduce(inactive, entity.CloseTab("reports"))
	assert.Empty(t, last.ActiveTab)
	assert.Empty(t, last.OpenTabs)
}

func TestReduce_PinIsIdempotent(t *testing.T) {
	r := testReducer(t)
	once, ev := r.Reduce(r.Initial, entity.PinTab("reports"))
	require.NotNil(t, ev)
	assert.Equal(t, entity.EventTabPinned, ev.Type)

	twice, ev2 := r.Reduce(once, entity.PinTab("reports"))
	assert.Nil(t, ev2)
	assert.Equal(t, once.PinnedTabs, twice.PinnedTabs)

	unpinned, ev3 := r.Reduce(twice, entity.UnpinTab("reports"))
	require.NotNil(t, ev3)
	assert.Equal(t, entity.EventTabUnpinned, ev3.Type)
	assert.Empty(t, unpinned.PinnedTabs)
}

func TestReduce_ReorderTabs(t *testing.T) {
	r := testReducer(t)
	state := reduceAll(r, r.Initial, entity.OpenTab("reports"))

	next, ev := r.Reduce(state, entity.ReorderTabs([]entity.TabID{"reports", "home"}))
	require.NotNil(t, ev)
	assert.Equal(t, entity.EventTabReordered, ev.Type)
	assert.Equal(t, []entity.TabID{"reports", "home"}, ev.TabOrder)
	assert.Equal(t, []entity.TabID{"reports", "home"}, next.TabOrder)

	all, ev := r.Reduce(next, entity.ReorderTabs([]entity.TabID{"reports", "admin", "analysis", "home"}))
	require.NotNil(t, ev)
	assert.Equal(t, []entity.TabID{"reports", "admin", "analysis", "home"}, all.TabOrder)
}

func TestReduce_ResetRestoreClear(t *testing.T) {
	r := testReducer(t)
	state := reduceAll(r, r.Initial,
		entity.SetActiveTab("analysis", "analysis-data"),
		entity.ToggleCollapsed(),
		entity.PinTab("home"),
	)
	assert.True(t, state.Collapsed)

	cleared, _ := r.Reduce(state, entity.ClearHistory())
	assert.Empty(t, cleared.History)
	assert.Equal(t, state.ActiveTab, cleared.ActiveTab)

	reset, ev := r.Reduce(state, entity.ResetState())
	assert.Nil(t, ev)
	assert.Equal(t, r.Initial, reset)

	restored, ev := r.Reduce(reset, entity.RestoreState(state))
	assert.Nil(t, ev)
	assert.Equal(t, state, restored)
}

func TestReduce_MaxHistoryTrimsOldest(t *testing.T) {
	tree := testTree(t)
	r := NewReducer(tree, DefaultState(tree, ""), 2)
	state := reduceAll(r, r.Initial,
		entity.SetActiveTab("home", ""),
		entity.SetActiveTab("analysis", ""),
		entity.SetActiveTab("reports", ""),
	)
	require.Len(t, state.History, 2)
	assert.Equal(t, entity.TabID("analysis"), state.History[0].TabID)
	assert.Equal(t, entity.TabID("reports"), state.History[1].TabID)
}

// Every reachable state keeps the active sub-tab under the active tab.
func TestReduce_ActiveSubTabAlwaysHasParent(t *testing.T) {
	r := testReducer(t)
	actions := []entity.Action{
		entity.OpenTab("analysis"),
		entity.SetActiveTab("analysis", "analysis-data"),
		entity.SetActiveSubTab("analysis-charts"),
		entity.OpenTab("reports"),
		entity.CloseTab("analysis"),
		entity.SetActiveSubTab("analysis-data"),
		entity.GoBack(),
		entity.SetActiveTab("reports", ""),
		entity.SetActiveSubTab("analysis-data"),
		entity.GoBack(),
		entity.CloseTab("reports"),
		entity.CloseTab("home"),
		entity.ResetState(),
		entity.SetActiveTab("analysis", "analysis-sensitivity"),
		entity.ToggleCollapsed(),
		entity.GoBack(),
	}

	state := r.Initial.Clone()
	for i, a := range actions {
		a.At = int64(i)
		state, _ = r.Reduce(state, a)
		if state.ActiveSubTab != "" {
			require.NotEmpty(t, state.ActiveTab, "step %d (%s)", i, a.Type)
			require.True(t, r.Tree.BelongsTo(state.ActiveSubTab, state.ActiveTab), "step %d (%s)", i, a.Type)
		}
	}
}
