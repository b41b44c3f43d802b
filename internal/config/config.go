package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8087,
			Bind: "loopback",
		},
		Database: DatabaseConfig{
			Path: "paragony.db",
		},
		Assistant: AssistantConfig{
			Provider:       "gemini",
			Model:          "gemini-2.5-flash-lite",
			MaxTokens:      2048,
			TimeoutSeconds: 60,
		},
		Docs: DocsConfig{
			MaxContextChars: 2000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
