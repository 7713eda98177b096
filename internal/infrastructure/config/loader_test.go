package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateXDG(t *testing.T) (configDir, stateDir string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "state"))
	return filepath.Join(root, "config", appName), filepath.Join(root, "state", appName)
}

func TestSetDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "file", mgr.viper.GetString("persistence.backend"))
	assert.Equal(t, "tabnav_state", mgr.viper.GetString("persistence.key"))
	assert.Equal(t, 500, mgr.viper.GetInt("persistence.debounce_ms"))
	assert.True(t, mgr.viper.GetBool("navigation.wrap_keyboard"))
}

func TestManager_LoadCreatesDefaultConfig(t *testing.T) {
	configDir, stateDir := isolateXDG(t)

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	_, err = os.Stat(filepath.Join(configDir, "config.toml"))
	require.NoError(t, err, "default config file is written on first run")

	cfg := mgr.Get()
	assert.Equal(t, BackendFile, cfg.Persistence.Backend)
	assert.Equal(t, stateDir, cfg.Persistence.Dir)
	assert.Equal(t, filepath.Join(stateDir, "logs", "tabnav.log"), cfg.Logging.File)
	assert.Equal(t, int64(5*1024*1024), cfg.Persistence.MaxBytes)
	assert.True(t, cfg.Persistence.Enabled)
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	configDir, _ := isolateXDG(t)
	require.NoError(t, os.MkdirAll(configDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`
[navigation]
default_tab = "kpi"
tabs_file = "tabs.yaml"
wrap_keyboard = false

[persistence]
backend = "SQLite"
debounce_ms = 250
`), 0o600))
	t.Setenv("TABNAV_LOG_LEVEL", "debug")
	t.Setenv("TABNAV_PERSISTENCE_KEY", "desk-2")

	mgr, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "kpi", cfg.Navigation.DefaultTab)
	assert.Equal(t, filepath.Join(configDir, "tabs.yaml"), cfg.Navigation.TabsFile)
	assert.False(t, cfg.Navigation.WrapKeyboard)
	assert.Equal(t, BackendSQLite, cfg.Persistence.Backend)
	assert.Equal(t, 250, cfg.Persistence.DebounceMs)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "desk-2", cfg.Persistence.Key)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	configDir, _ := isolateXDG(t)
	require.NoError(t, os.MkdirAll(configDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(`
[persistence]
backend = "redis"
debounce_ms = -1
`), 0o600))

	mgr, err := NewManager()
	require.NoError(t, err)
	err = mgr.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "persistence.backend")
	assert.Contains(t, err.Error(), "persistence.debounce_ms")
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Persistence.Backend = ""
	cfg.Persistence.Key = "  "
	cfg.Logging.Format = "JSON"
	cfg.Logging.Level = " WARN "

	normalizeConfig(cfg)

	assert.Equal(t, BackendFile, cfg.Persistence.Backend)
	assert.Equal(t, "tabnav_state", cfg.Persistence.Key)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateConfig_Defaults(t *testing.T) {
	assert.NoError(t, validateConfig(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.Navigation.MaxHistory = -3
	cfg.Logging.Level = "loud"
	err := validateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navigation.max_history")
	assert.Contains(t, err.Error(), "logging.level")
}
