// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full process configuration. AI credentials are optional;
// when either is missing the command router runs in its heuristic fallback
// mode.
type Config struct {
	Port              int           `env:"UNIDASH_PORT" envDefault:"8080"`
	LogFile           string        `env:"UNIDASH_LOG_FILE"`
	BroadcastInterval time.Duration `env:"UNIDASH_BROADCAST_INTERVAL" envDefault:"5s"`
	ReconnectBackoff  time.Duration `env:"UNIDASH_RECONNECT_BACKOFF" envDefault:"3s"`
	CommandTimeout    time.Duration `env:"UNIDASH_COMMAND_TIMEOUT" envDefault:"15s"`
	SampleHostDisk    bool          `env:"UNIDASH_SAMPLE_HOST_DISK" envDefault:"false"`

	OpenAIBaseURL string `env:"AI_INTEGRATIONS_OPENAI_BASE_URL"`
	OpenAIAPIKey  string `env:"AI_INTEGRATIONS_OPENAI_API_KEY"`
	OpenAIModel   string `env:"UNIDASH_OPENAI_MODEL" envDefault:"gpt-5"`
}

// Load reads a .env file when present and then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// AIConfigured reports whether the delegated command mode has credentials.
func (c Config) AIConfigured() bool {
	return c.OpenAIBaseURL != "" && c.OpenAIAPIKey != ""
}
