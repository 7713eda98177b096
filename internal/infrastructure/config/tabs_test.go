package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabnav/internal/domain/entity"
)

func TestLoadTabTree_BuiltIn(t *testing.T) {
	tree, err := LoadTabTree("")
	require.NoError(t, err)

	assert.Equal(t, []entity.TabID{"analysis", "kpi", "data-explorer", "admin", "settings"}, tree.TabIDs())
	assert.Equal(t, entity.TabID("analysis"), tree.DefaultTabID())
	assert.True(t, tree.BelongsTo("kpi-table", "kpi"))

	admin, ok := tree.Tab("admin")
	require.True(t, ok)
	require.NotNil(t, admin.Permission)
	assert.True(t, admin.Permission.RequiresAuth)
	assert.Equal(t, []string{"admin", "manager"}, admin.Permission.Roles)

	logs, ok := tree.SubTab("admin-logs")
	require.True(t, ok)
	require.NotNil(t, logs.Badge)
	require.NotNil(t, logs.Badge.Count)
	assert.Equal(t, 3, *logs.Badge.Count)
	assert.Equal(t, entity.BadgeRed, logs.Badge.Color)
}

func TestParseTabs_OrderAndErrors(t *testing.T) {
	tree, err := ParseTabs([]byte(`
tabs:
  - id: reports
    label: Reports
    order: 9
  - id: home
    label: Home
    order: -1
  - id: market
    label: Market
`))
	require.NoError(t, err)
	assert.Equal(t, []entity.TabID{"home", "market", "reports"}, tree.TabIDs())

	_, err = ParseTabs([]byte("tabs: []"))
	assert.ErrorIs(t, err, entity.ErrInvalidTabTree)

	_, err = ParseTabs([]byte("tabs: [{id: a}, {id: a}]"))
	assert.ErrorIs(t, err, entity.ErrInvalidTabTree)

	_, err = ParseTabs([]byte("tabs: {"))
	assert.Error(t, err)
}

func TestLoadTabTree_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tabs:
  - id: home
    label: Home
  - id: admin
    label: Admin
    disabled: true
  - id: reports
    label: Reports
    sub_tabs:
      - id: reports-daily
        label: Daily
`), 0o600))

	tree, err := LoadTabTree(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Len())
	parent, ok := tree.ParentOf("reports-daily")
	require.True(t, ok)
	assert.Equal(t, entity.TabID("reports"), parent)

	_, err = LoadTabTree(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
