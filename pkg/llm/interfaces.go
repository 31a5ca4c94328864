// Package llm provides clients for hosted text-generation endpoints.
package llm

import "context"

// GenerateResult is one chat completion with usage stats.
type GenerateResult struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// TextGenerator defines the single-shot completion contract the drafting
// helpers depend on. Use this interface for dependency injection to
// enable mocking in tests.
type TextGenerator interface {
	// Generate produces one completion for the prompt. The system message
	// carries the shared style/guardrail preamble; model selects between
	// the drafting and summarizer roles.
	Generate(ctx context.Context, model, systemMessage, prompt string) (*GenerateResult, error)

	// GetEndpoint returns the configured endpoint for logging.
	GetEndpoint() string
}
