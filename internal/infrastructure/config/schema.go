package config

// Config is the application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging" toml:"logging"`
	Navigation  NavigationConfig  `mapstructure:"navigation" toml:"navigation"`
	Persistence PersistenceConfig `mapstructure:"persistence" toml:"persistence"`
}

// LoggingConfig controls the zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	// File receives logs while the terminal UI runs. Empty means the
	// default log file under the state directory.
	File       string `mapstructure:"file" toml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
}

// NavigationConfig controls the tab tree and keyboard behaviour.
type NavigationConfig struct {
	DefaultTab string `mapstructure:"default_tab" toml:"default_tab"`
	// TabsFile is a YAML tab tree. Empty uses the built-in tree; relative
	// paths resolve against the config directory.
	TabsFile     string `mapstructure:"tabs_file" toml:"tabs_file"`
	MaxHistory   int    `mapstructure:"max_history" toml:"max_history"`
	WrapKeyboard bool   `mapstructure:"wrap_keyboard" toml:"wrap_keyboard"`
}

// Backend selects the durable slot implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// PersistenceConfig controls the durable navigation slot.
type PersistenceConfig struct {
	Enabled        bool    `mapstructure:"enabled" toml:"enabled"`
	Backend        Backend `mapstructure:"backend" toml:"backend"`
	Key            string  `mapstructure:"key" toml:"key"`
	DebounceMs     int     `mapstructure:"debounce_ms" toml:"debounce_ms"`
	MaxBytes       int64   `mapstructure:"max_bytes" toml:"max_bytes"`
	Dir            string  `mapstructure:"dir" toml:"dir"`
	PollIntervalMs int     `mapstructure:"poll_interval_ms" toml:"poll_interval_ms"`
}
