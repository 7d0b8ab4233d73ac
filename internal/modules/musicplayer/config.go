package musicplayer

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the music player module configuration.
type Config struct {
	// LavalinkAddress is the host:port of the Lavalink node.
	LavalinkAddress string `env:"LAVALINK_ADDRESS,notEmpty"`

	// LavalinkPassword is the password for the Lavalink node.
	LavalinkPassword string `env:"LAVALINK_PASSWORD,notEmpty"`
}

// LoadConfig loads the module configuration from environment variables.
func LoadConfig() (*Config, error) {
	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse music player config: %w", err)
	}
	return &config, nil
}
