package config

import (
	"fmt"
	"strings"
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateNavigation(config)...)
	validationErrors = append(validationErrors, validatePersistence(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch config.Logging.Level {
	case "", "trace", "debug", "info", "warn", "warning", "error", "off", "disabled":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error, off (got %q)", config.Logging.Level))
	}
	if config.Logging.MaxSizeMB < 0 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be non-negative")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateNavigation(config *Config) []string {
	if config.Navigation.MaxHistory < 0 {
		return []string{"navigation.max_history must be non-negative (0 keeps everything)"}
	}
	return nil
}

func validatePersistence(config *Config) []string {
	var validationErrors []string
	switch config.Persistence.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("persistence.backend must be one of file, sqlite, memory (got %q)", config.Persistence.Backend))
	}
	if config.Persistence.DebounceMs < 0 {
		validationErrors = append(validationErrors, "persistence.debounce_ms must be non-negative")
	}
	if config.Persistence.MaxBytes < 0 {
		validationErrors = append(validationErrors, "persistence.max_bytes must be non-negative (0 disables the limit)")
	}
	if config.Persistence.PollIntervalMs < 0 {
		validationErrors = append(validationErrors, "persistence.poll_interval_ms must be non-negative")
	}
	return validationErrors
}
