package bot

import (
	"github.com/caarlos0/env/v11"
)

// Config holds the bot configuration loaded from environment variables.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,notEmpty"`

	// Prefixes a message may start with to be treated as a command.
	Prefixes []string `env:"COMMAND_PREFIXES" envDefault:"!,>,~,.,-"`

	// DeleteCommandMessages removes the triggering message after a command
	// runs, keeping channels tidy. Requires the Manage Messages permission.
	DeleteCommandMessages bool `env:"DELETE_COMMAND_MESSAGES" envDefault:"true"`
}

// LoadConfig loads configuration from environment variables.
// Returns an error if required fields are missing.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
