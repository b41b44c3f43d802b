package config

// Config is the root configuration for the paragony assistant service.
type Config struct {
	Server    ServerConfig    `yaml:"server,omitempty"`
	Database  DatabaseConfig  `yaml:"database,omitempty"`
	Assistant AssistantConfig `yaml:"assistant,omitempty"`
	Docs      DocsConfig      `yaml:"docs,omitempty"`
	Logging   LoggingConfig   `yaml:"logging,omitempty"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Port           int      `yaml:"port,omitempty"`
	Bind           string   `yaml:"bind,omitempty"` // "loopback" | "lan" | "custom"
	CustomBindHost string   `yaml:"customBindHost,omitempty"`
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// DatabaseConfig points at the SQLite database file.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// AssistantConfig configures the language model behind the assistant.
type AssistantConfig struct {
	Provider       string   `yaml:"provider,omitempty"` // "gemini" | "mock"
	Model          string   `yaml:"model,omitempty"`
	APIKey         string   `yaml:"apiKey,omitempty"` // supports ${ENV_VAR} references
	MaxTokens      int      `yaml:"maxTokens,omitempty"`
	Temperature    *float64 `yaml:"temperature,omitempty"`
	TimeoutSeconds int      `yaml:"timeoutSeconds,omitempty"` // per model call
}

// DocsConfig configures the documentation retrieval used for app questions.
type DocsConfig struct {
	Enabled         *bool `yaml:"enabled,omitempty"`
	MaxContextChars int   `yaml:"maxContextChars,omitempty"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"` // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	File  string `yaml:"file,omitempty"`  // empty means stderr console output
}

// DocsEnabled reports whether documentation retrieval is on. Defaults to true.
func (c DocsConfig) DocsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
