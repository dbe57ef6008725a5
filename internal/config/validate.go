package config

import (
	"fmt"
	"slices"
)

// ValidationIssue describes a problem with a config value.
type ValidationIssue struct {
	Path    string
	Message string
}

func (v ValidationIssue) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// Validate checks a Config for issues. Returns nil if valid.
func Validate(cfg *Config) []ValidationIssue {
	var issues []ValidationIssue

	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		issues = append(issues, ValidationIssue{
			Path:    "server.port",
			Message: fmt.Sprintf("port must be 0-65535, got %d", cfg.Server.Port),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	validStores := []string{"memory", "sqlite", "redis"}
	if cfg.Session.Store != "" && !slices.Contains(validStores, cfg.Session.Store) {
		issues = append(issues, ValidationIssue{
			Path:    "session.store",
			Message: fmt.Sprintf("must be one of %v, got %q", validStores, cfg.Session.Store),
		})
	}
	if cfg.Session.Store == "sqlite" && cfg.Session.SQLitePath == "" {
		issues = append(issues, ValidationIssue{
			Path:    "session.sqlitePath",
			Message: "required when session.store is sqlite",
		})
	}
	if cfg.Session.Store == "redis" && cfg.Session.Redis.Addr == "" {
		issues = append(issues, ValidationIssue{
			Path:    "session.redis.addr",
			Message: "required when session.store is redis",
		})
	}
	if cfg.Session.TTLHours < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "session.ttlHours",
			Message: fmt.Sprintf("must not be negative, got %d", cfg.Session.TTLHours),
		})
	}

	validProviders := []string{"openai", "mock"}
	if cfg.Model.Provider != "" && !slices.Contains(validProviders, cfg.Model.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "model.provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.Model.Provider),
		})
	}
	if cfg.Model.Provider == "openai" && cfg.Model.APIKey == "" {
		issues = append(issues, ValidationIssue{
			Path:    "model.apiKey",
			Message: "required when model.provider is openai",
		})
	}

	return issues
}
