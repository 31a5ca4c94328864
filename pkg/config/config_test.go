package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionString(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "atlas",
		Password: "secret",
		Database: "atlas_crm",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=atlas password=secret dbname=atlas_crm sslmode=disable",
		cfg.ConnectionString())
}

func TestAPIKey(t *testing.T) {
	cfg := AIConfig{OpenAIAPIKey: "sk-openai", AnthropicAPIKey: "sk-ant"}

	cfg.Provider = "openai"
	assert.Equal(t, "sk-openai", cfg.APIKey())

	cfg.Provider = "anthropic"
	assert.Equal(t, "sk-ant", cfg.APIKey())
}

func TestValidate(t *testing.T) {
	cfg := &Config{AI: AIConfig{Provider: "openai"}}
	assert.NoError(t, cfg.validate())

	cfg.AI.Provider = "anthropic"
	assert.NoError(t, cfg.validate())

	cfg.AI.Provider = "ollama"
	assert.Error(t, cfg.validate())
}
