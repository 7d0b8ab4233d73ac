package cardlookup

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the card lookup module configuration.
type Config struct {
	// BaseURL overrides the card API endpoint, mainly for testing.
	BaseURL string `env:"CARD_API_BASE_URL" envDefault:"https://api.scryfall.com"`
}

// LoadConfig loads the module configuration from environment variables.
func LoadConfig() (*Config, error) {
	config, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse card lookup config: %w", err)
	}
	return &config, nil
}
