package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/domain/entity"
)

func TestValidateTabState_RoundTrip(t *testing.T) {
	r := testReducer(t)

	sequences := map[string][]entity.Action{
		"initial": nil,
		"sub-tab navigation": {
			entity.SetActiveTab("analysis", "analysis-data"),
			entity.SetActiveSubTab("analysis-charts"),
			entity.SetActiveTab("reports", ""),
		},
		"tab management": {
			entity.OpenTab("analysis"),
			entity.OpenTab("reports"),
			entity.PinTab("reports"),
			entity.ReorderTabs([]entity.TabID{"reports", "analysis", "home"}),
			entity.ToggleCollapsed(),
			entity.CloseTab("home"),
		},
		"everything closed": {
			entity.SetActiveTab("analysis", "analysis-sensitivity"),
			entity.CloseTab("home"),
			entity.SetActiveTab("home", ""),
			entity.GoBack(),
		},
	}

	for name, actions := range sequences {
		t.Run(name, func(t *testing.T) {
			state := reduceAll(r, r.Initial, actions...)
			raw, err := Encode(state)
			require.NoError(t, err)

			got := ValidateTabState(raw, r.Tree)
			assert.Equal(t, state, got)
		})
	}
}

func TestValidateTabState_MalformedInput(t *testing.T) {
	tree := testTree(t)

	inputs := map[string]string{
		"empty":        "",
		"not json":     "{{{",
		"array":        "[1,2,3]",
		"string":       `"activeTab"`,
		"null":         "null",
		"number":       "42",
		"empty object": "{}",
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				got := ValidateTabState([]byte(raw), tree)
				assert.Equal(t, entity.NewNavigationState(), got)
			})
		})
	}
}

func TestValidateTabState_DropsStaleIDs(t *testing.T) {
	tree := testTree(t)
	raw := `{
		"activeTab": "ghost-tab",
		"activeSubTab": "ghost-sub",
		"history": [
			{"tabId": "ghost-tab", "timestamp": 1},
			{"tabId": "analysis", "subTabId": "kpi-overview", "timestamp": 2},
			{"tabId": "home", "timestamp": 3},
			"garbage",
			{"subTabId": "analysis-data"}
		],
		"collapsed": "yes",
		"openTabs": ["home", "ghost-tab", 7, "home", "reports"],
		"pinnedTabs": "reports",
		"tabOrder": ["reports", "home"],
		"lastActiveSubTabs": {"analysis": "analysis-data", "home": "analysis-data", "ghost-tab": "x"}
	}`

	got := ValidateTabState([]byte(raw), tree)

	assert.Empty(t, got.ActiveTab)
	assert.Empty(t, got.ActiveSubTab)
	assert.Equal(t, []entity.HistoryEntry{
		{TabID: "analysis", Timestamp: 2},
		{TabID: "home", Timestamp: 3},
	}, got.History)
	assert.False(t, got.Collapsed)
	assert.Equal(t, []entity.TabID{"home", "reports"}, got.OpenTabs)
	assert.Empty(t, got.PinnedTabs)
	assert.Equal(t, []entity.TabID{"reports", "home"}, got.TabOrder)
	assert.Equal(t, map[entity.TabID]entity.SubTabID{"analysis": "analysis-data"}, got.LastActiveSubTabs)
}

func TestValidateTabState_MismatchedActiveSubTab(t *testing.T) {
	tree := testTree(t)
	got := ValidateTabState([]byte(`{"activeTab":"home","activeSubTab":"analysis-data"}`), tree)
	assert.Equal(t, entity.TabID("home"), got.ActiveTab)
	assert.Empty(t, got.ActiveSubTab)
}

func TestEncode_NullsAbsentIDs(t *testing.T) {
	raw, err := Encode(entity.NewNavigationState())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"activeTab": null,
		"activeSubTab": null,
		"history": [],
		"collapsed": false,
		"openTabs": [],
		"pinnedTabs": [],
		"tabOrder": [],
		"lastActiveSubTabs": {}
	}`, string(raw))
}

func TestDefaultState(t *testing.T) {
	tree := testTree(t)

	preferred := DefaultState(tree, "reports")
	assert.Equal(t, entity.TabID("reports"), preferred.ActiveTab)
	assert.Equal(t, []entity.TabID{"reports"}, preferred.OpenTabs)

	fallback := DefaultState(tree, "ghost")
	assert.Equal(t, entity.TabID("home"), fallback.ActiveTab)

	allDisabled := entity.MustTabTree([]entity.TabConfig{{ID: "x", Disabled: true}})
	assert.Equal(t, entity.NewNavigationState(), DefaultState(allDisabled, ""))
}

func TestIsNavigable(t *testing.T) {
	tree := entity.MustTabTree([]entity.TabConfig{
		{ID: "home"},
		{ID: "admin", Permission: &entity.TabPermission{CanView: true, RequiresAuth: true, Roles: []string{"admin"}},
			SubTabs: []entity.SubTabConfig{{ID: "admin-logs"}, {ID: "admin-off", Disabled: true}}},
		{ID: "off", Disabled: true},
		{ID: "hidden", Permission: &entity.TabPermission{CanView: false}},
	})
	admin := entity.Viewer{Authenticated: true, Roles: []string{"admin"}}

	assert.True(t, IsNavigable(tree, entity.AnonymousViewer, "home"))
	assert.False(t, IsNavigable(tree, entity.AnonymousViewer, "ghost"))
	assert.False(t, IsNavigable(tree, entity.AnonymousViewer, "off"))
	assert.False(t, IsNavigable(tree, admin, "hidden"))
	assert.False(t, IsNavigable(tree, entity.AnonymousViewer, "admin"))
	assert.False(t, IsNavigable(tree, entity.Viewer{Authenticated: true}, "admin"))
	assert.True(t, IsNavigable(tree, admin, "admin"))

	assert.True(t, IsSubTabNavigable(tree, admin, "admin-logs"))
	assert.False(t, IsSubTabNavigable(tree, entity.AnonymousViewer, "admin-logs"))
	assert.False(t, IsSubTabNavigable(tree, admin, "admin-off"))
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in  string
		tab entity.TabID
		sub entity.SubTabID
		ok  bool
	}{
		{"", "", "", false},
		{"#", "", "", false},
		{"analysis", "analysis", "", true},
		{"#analysis/analysis-data", "analysis", "analysis-data", true},
		{"/kpi/kpi-table", "kpi", "kpi-table", true},
		{"kpi/", "kpi", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tab, sub, ok := ParsePath(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.tab, tab)
			assert.Equal(t, tt.sub, sub)
		})
	}
}

func TestDecodeTabState_Usable(t *testing.T) {
	tree := testTree(t)

	tests := []struct {
		name    string
		raw     string
		usable  bool
		wantTab entity.TabID
	}{
		{name: "known active tab", raw: `{"activeTab":"reports","openTabs":["reports"]}`, usable: true, wantTab: "reports"},
		{name: "every tab closed", raw: `{"activeTab":null,"openTabs":[],"pinnedTabs":["reports"]}`, usable: true},
		{name: "empty object", raw: `{}`, usable: true},
		{name: "ghost active tab", raw: `{"activeTab":"ghost-tab","openTabs":["home"]}`},
		{name: "not json", raw: `{{{`},
		{name: "array", raw: `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, usable := DecodeTabState([]byte(tt.raw), tree)
			assert.Equal(t, tt.usable, usable)
			assert.Equal(t, tt.wantTab, got.ActiveTab)
			assert.Equal(t, got, ValidateTabState([]byte(tt.raw), tree))
		})
	}
}
