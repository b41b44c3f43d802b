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

	validBinds := []string{"loopback", "lan", "custom"}
	if cfg.Server.Bind != "" && !slices.Contains(validBinds, cfg.Server.Bind) {
		issues = append(issues, ValidationIssue{
			Path:    "server.bind",
			Message: fmt.Sprintf("must be one of %v, got %q", validBinds, cfg.Server.Bind),
		})
	}
	if cfg.Server.Bind == "custom" && cfg.Server.CustomBindHost == "" {
		issues = append(issues, ValidationIssue{
			Path:    "server.customBindHost",
			Message: "required when bind: custom",
		})
	}

	if cfg.Database.Path == "" {
		issues = append(issues, ValidationIssue{
			Path:    "database.path",
			Message: "path is required",
		})
	}

	validProviders := []string{"gemini", "mock"}
	if cfg.Assistant.Provider != "" && !slices.Contains(validProviders, cfg.Assistant.Provider) {
		issues = append(issues, ValidationIssue{
			Path:    "assistant.provider",
			Message: fmt.Sprintf("must be one of %v, got %q", validProviders, cfg.Assistant.Provider),
		})
	}
	if cfg.Assistant.Provider == "gemini" && cfg.Assistant.APIKey == "" {
		issues = append(issues, ValidationIssue{
			Path:    "assistant.apiKey",
			Message: "required for the gemini provider",
		})
	}
	if cfg.Assistant.MaxTokens < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "assistant.maxTokens",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Assistant.MaxTokens),
		})
	}
	if t := cfg.Assistant.Temperature; t != nil && (*t < 0 || *t > 2) {
		issues = append(issues, ValidationIssue{
			Path:    "assistant.temperature",
			Message: fmt.Sprintf("must be 0-2, got %g", *t),
		})
	}
	if cfg.Assistant.TimeoutSeconds < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "assistant.timeoutSeconds",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Assistant.TimeoutSeconds),
		})
	}

	if cfg.Docs.MaxContextChars < 0 {
		issues = append(issues, ValidationIssue{
			Path:    "docs.maxContextChars",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Docs.MaxContextChars),
		})
	}

	validLogLevels := []string{"silent", "fatal", "error", "warn", "info", "debug", "trace"}
	if cfg.Logging.Level != "" && !slices.Contains(validLogLevels, cfg.Logging.Level) {
		issues = append(issues, ValidationIssue{
			Path:    "logging.level",
			Message: fmt.Sprintf("must be one of %v, got %q", validLogLevels, cfg.Logging.Level),
		})
	}

	return issues
}
