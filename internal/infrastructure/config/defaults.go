package config

const (
	dirPerm = 0o750

	defaultStateKey   = "tabnav_state"
	defaultDebounceMs = 500
	defaultMaxBytes   = 5 * 1024 * 1024
	defaultPollMs     = 1000
	defaultMaxHistory = 50
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Navigation: NavigationConfig{
			MaxHistory:   defaultMaxHistory,
			WrapKeyboard: true,
		},
		Persistence: PersistenceConfig{
			Enabled:        true,
			Backend:        BackendFile,
			Key:            defaultStateKey,
			DebounceMs:     defaultDebounceMs,
			MaxBytes:       defaultMaxBytes,
			PollIntervalMs: defaultPollMs,
		},
	}
}
