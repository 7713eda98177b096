package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/bnema/tabnav/internal/logging"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Configure Viper for TOML as default format
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// Environment variables override the file, e.g. TABNAV_PERSISTENCE_BACKEND.
	v.SetEnvPrefix("TABNAV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Logging keeps the short names the logger itself reads.
	if err := v.BindEnv("logging.level", "TABNAV_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind TABNAV_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "TABNAV_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind TABNAV_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.parse()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// parse unmarshals, resolves paths, normalizes and validates.
func (m *Manager) parse() (*Config, error) {
	config, err := m.unmarshalConfig()
	if err != nil {
		return nil, err
	}
	if err := resolvePaths(config); err != nil {
		return nil, err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			if createErr := m.createDefaultConfig(); createErr != nil {
				configDir, _ := GetConfigDir()
				return fmt.Errorf(
					"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
					configDir,
					createErr,
				)
			}
			if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
				return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
			}
		} else {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configFile, _ = GetConfigFile()
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

// resolvePaths fills in directory defaults that depend on the environment.
func resolvePaths(config *Config) error {
	if config.Persistence.Dir == "" {
		stateDir, err := GetStateDir()
		if err != nil {
			return fmt.Errorf("failed to get state directory: %w", err)
		}
		config.Persistence.Dir = stateDir
	}
	if config.Logging.File == "" {
		logFile, err := GetLogFile()
		if err != nil {
			return fmt.Errorf("failed to get log file path: %w", err)
		}
		config.Logging.File = logFile
	}
	if config.Navigation.TabsFile != "" && !filepath.IsAbs(config.Navigation.TabsFile) {
		configDir, err := GetConfigDir()
		if err != nil {
			return fmt.Errorf("failed to get config directory: %w", err)
		}
		config.Navigation.TabsFile = filepath.Join(configDir, config.Navigation.TabsFile)
	}
	return nil
}

func normalizeConfig(config *Config) {
	switch strings.ToLower(strings.TrimSpace(string(config.Persistence.Backend))) {
	case "", string(BackendFile):
		config.Persistence.Backend = BackendFile
	case string(BackendSQLite), "sqlite3":
		config.Persistence.Backend = BackendSQLite
	case string(BackendMemory):
		config.Persistence.Backend = BackendMemory
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	default:
		config.Logging.Format = "console"
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Navigation.DefaultTab = strings.TrimSpace(config.Navigation.DefaultTab)
	config.Persistence.Key = strings.TrimSpace(config.Persistence.Key)
	if config.Persistence.Key == "" {
		config.Persistence.Key = defaultStateKey
	}
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	m.viper.SetConfigType("toml")
	if err := m.viper.SafeWriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log := logging.NewFromEnv()
	log.Info().Str("path", configFile).Msg("created default configuration file")

	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.setLoggingDefaults(defaults)
	m.setNavigationDefaults(defaults)
	m.setPersistenceDefaults(defaults)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.file", defaults.Logging.File)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
}

func (m *Manager) setNavigationDefaults(defaults *Config) {
	m.viper.SetDefault("navigation.default_tab", defaults.Navigation.DefaultTab)
	m.viper.SetDefault("navigation.tabs_file", defaults.Navigation.TabsFile)
	m.viper.SetDefault("navigation.max_history", defaults.Navigation.MaxHistory)
	m.viper.SetDefault("navigation.wrap_keyboard", defaults.Navigation.WrapKeyboard)
}

func (m *Manager) setPersistenceDefaults(defaults *Config) {
	m.viper.SetDefault("persistence.enabled", defaults.Persistence.Enabled)
	m.viper.SetDefault("persistence.backend", string(defaults.Persistence.Backend))
	m.viper.SetDefault("persistence.key", defaults.Persistence.Key)
	m.viper.SetDefault("persistence.debounce_ms", defaults.Persistence.DebounceMs)
	m.viper.SetDefault("persistence.max_bytes", defaults.Persistence.MaxBytes)
	m.viper.SetDefault("persistence.dir", defaults.Persistence.Dir)
	m.viper.SetDefault("persistence.poll_interval_ms", defaults.Persistence.PollIntervalMs)
}
