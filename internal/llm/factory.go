package llm

import (
	"fmt"

	"github.com/lukaszlap/paragonyOSA/internal/config"
	"github.com/lukaszlap/paragonyOSA/internal/logging"
)

// FromConfig builds the model client named by the assistant configuration.
func FromConfig(cfg config.AssistantConfig, log *logging.Logger) (Client, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		log.Info().Str("provider", "gemini").Str("model", cfg.Model).Msg("model client ready")
		return NewGeminiClient(cfg.APIKey, cfg.Model), nil
	case "mock":
		log.Warn().Msg("using mock model client")
		return &MockClient{}, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}
