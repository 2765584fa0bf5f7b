package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Storage.Driver == DriverPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required for the postgres storage driver")
	}

	if err := c.Generation.validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if strings.TrimSpace(s.Key) == "" {
		return fmt.Errorf("key must not be empty")
	}

	switch s.Driver {
	case DriverMemory, DriverPostgres:
	case DriverFile:
		if strings.TrimSpace(s.Dir) == "" {
			return fmt.Errorf("dir is required for the file driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown driver %q (want memory, file, sqlite or postgres)", s.Driver)
	}
	return nil
}

func (g *GenerationConfig) validate() error {
	switch g.Provider {
	case ProviderNone, ProviderAnthropic, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown provider %q (want anthropic, openai or none)", g.Provider)
	}
	if g.MaxCards < 1 || g.MaxCards > 20 {
		return fmt.Errorf("max_cards must be between 1 and 20 (got %d)", g.MaxCards)
	}
	if g.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", g.MaxTokens)
	}
	if g.RateLimitPerMinute < 0 {
		return fmt.Errorf("rate_limit_per_minute must be >= 0 (got %d)", g.RateLimitPerMinute)
	}
	return nil
}
