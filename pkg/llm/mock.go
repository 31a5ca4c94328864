package llm

import "context"

// MockTextGenerator is a configurable mock for testing drafting
// pipelines. Set GenerateFunc to control behavior in tests.
type MockTextGenerator struct {
	// GenerateFunc is called when Generate is invoked.
	// If nil, returns an empty result and nil error.
	GenerateFunc func(ctx context.Context, model, systemMessage, prompt string) (*GenerateResult, error)

	// Endpoint is returned by GetEndpoint. Defaults to "http://mock-endpoint".
	Endpoint string

	// Call tracking for verification
	GenerateCalls int
	LastModel     string
	LastSystem    string
	LastPrompt    string
}

// NewMockTextGenerator creates a new mock with sensible defaults.
func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{Endpoint: "http://mock-endpoint"}
}

// Generate implements TextGenerator.
func (m *MockTextGenerator) Generate(ctx context.Context, model, systemMessage, prompt string) (*GenerateResult, error) {
	m.GenerateCalls++
	m.LastModel = model
	m.LastSystem = systemMessage
	m.LastPrompt = prompt
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, model, systemMessage, prompt)
	}
	return &GenerateResult{}, nil
}

// GetEndpoint implements TextGenerator.
func (m *MockTextGenerator) GetEndpoint() string {
	if m.Endpoint == "" {
		return "http://mock-endpoint"
	}
	return m.Endpoint
}

var _ TextGenerator = (*MockTextGenerator)(nil)
