package config

import (
	"fmt"
	"net/url"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for atlas.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	// UIDir is the directory of static UI files served at /.
	UIDir string `yaml:"ui_dir" env:"UI_DIR" env-default:"./ui/dist"`

	// MigrationsDir is the directory of versioned SQL migration scripts.
	MigrationsDir string `yaml:"migrations_dir" env:"MIGRATIONS_DIR" env-default:"./migrations"`

	// StyleDir is the directory of optional style-example emails loaded
	// best-effort at startup.
	StyleDir string `yaml:"style_dir" env:"STYLE_DIR" env-default:"./style_examples"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// AI drafting and summarization configuration
	AI AIConfig `yaml:"ai"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"atlas"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"atlas_crm"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// AIConfig holds hosted model configuration for the drafting helpers.
// Two model roles: DraftingModel writes emails and website analyses,
// SummarizerModel handles note summaries and fact extraction.
type AIConfig struct {
	Provider        string  `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"` // "openai" or "anthropic"
	BaseURL         string  `yaml:"base_url" env:"AI_BASE_URL" env-default:""`
	DraftingModel   string  `yaml:"drafting_model" env:"ATLAS_DRAFTING_MODEL" env-default:"gpt-5-mini-2025-08-07"`
	SummarizerModel string  `yaml:"summarizer_model" env:"ATLAS_SUMMARIZER_MODEL" env-default:"gpt-5-nano-2025-08-07"`
	Temperature     float64 `yaml:"temperature" env:"AI_TEMPERATURE" env-default:"0.4"`

	OpenAIAPIKey    string `yaml:"-" env:"OPENAI_API_KEY"`    // Secret - not in YAML
	AnthropicAPIKey string `yaml:"-" env:"ANTHROPIC_API_KEY"` // Secret - not in YAML

	// Feature flags for the intelligence pipelines.
	FactExtractionEnabled bool `yaml:"fact_extraction_enabled" env:"FACT_EXTRACTION_ENABLED" env-default:"true"`
	SuggestionsEnabled    bool `yaml:"suggestions_enabled" env:"INTEL_SUGGESTIONS_ENABLED" env-default:"true"`
}

// APIKey returns the key for the configured provider.
func (c *AIConfig) APIKey() string {
	if c.Provider == "anthropic" {
		return c.AnthropicAPIKey
	}
	return c.OpenAIAPIKey
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// Environment variables override YAML values. Secrets (PGPASSWORD,
// OPENAI_API_KEY, ANTHROPIC_API_KEY) must come from environment variables
// (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		cfg.BaseURL = (&url.URL{
			Scheme: "http",
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AI.Provider {
	case "openai", "anthropic":
	default:
		return fmt.Errorf("unsupported ai provider %q (expected openai or anthropic)", c.AI.Provider)
	}
	return nil
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
