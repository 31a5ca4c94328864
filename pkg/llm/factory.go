package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewTextGenerator creates the client for the configured provider.
// Supported providers: "openai" (default, also covers OpenAI-compatible
// endpoints via Config.Endpoint) and "anthropic". With no API key the
// returned generator fails every call with an auth error, so the service
// starts and the CRM works while the drafting endpoints report the
// missing key per request.
func NewTextGenerator(provider string, cfg *Config, logger *zap.Logger) (TextGenerator, error) {
	if cfg.APIKey == "" {
		logger.Warn("No API key configured, drafting endpoints will be unavailable",
			zap.String("provider", provider))
		return &unconfiguredGenerator{provider: provider}, nil
	}

	switch provider {
	case "", "openai":
		return NewOpenAIClient(cfg, logger)
	case "anthropic":
		return NewAnthropicClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", provider)
	}
}

// unconfiguredGenerator stands in when no API key is set.
type unconfiguredGenerator struct {
	provider string
}

func (g *unconfiguredGenerator) Generate(ctx context.Context, model, systemMessage, prompt string) (*GenerateResult, error) {
	return nil, &Error{
		Type:    ErrorTypeAuth,
		Message: fmt.Sprintf("no API key configured for provider %q", g.provider),
	}
}

func (g *unconfiguredGenerator) GetEndpoint() string {
	return "unconfigured"
}

var _ TextGenerator = (*unconfiguredGenerator)(nil)
