package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config carries environment-sourced defaults for CLI flags. Flags always
// win over environment values; environment values win over built-in
// defaults.
type Config struct {
	DB      string `env:"ASTRODIGEST_DB" envDefault:"astrodigest.db"`
	Format  string `env:"ASTRODIGEST_FORMAT" envDefault:"text"`
	Verbose bool   `env:"ASTRODIGEST_VERBOSE" envDefault:"false"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
