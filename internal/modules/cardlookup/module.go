// Package cardlookup provides card database lookup commands backed by the
// Scryfall API.
package cardlookup

import (
	"fmt"
	"log/slog"

	"github.com/arvoh/manabot/internal/bot"
	"github.com/arvoh/manabot/internal/modules/cardlookup/application/usecases"
	"github.com/arvoh/manabot/internal/modules/cardlookup/infrastructure"
	pdiscord "github.com/arvoh/manabot/internal/modules/cardlookup/presentation/discord"
)

func init() {
	bot.Register(&Module{})
}

// Module is the card lookup bot module.
type Module struct {
	config   *Config
	handlers *pdiscord.CommandHandlers
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cardlookup"
}

// LoadConfig loads the module configuration.
func (m *Module) LoadConfig() error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	m.config = config
	return nil
}

// Init wires the module's services.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		return fmt.Errorf("cardlookup: config not loaded")
	}

	client := infrastructure.NewScryfallClient(m.config.BaseURL)
	lookup := usecases.NewLookupService(client)
	m.handlers = pdiscord.NewCommandHandlers(lookup, deps.Config.DeleteCommandMessages)

	slog.Info("card lookup module initialized", "base_url", m.config.BaseURL)
	return nil
}

// Commands returns the module's message commands.
func (m *Module) Commands() []*bot.MessageCommand {
	return m.handlers.Commands()
}

// EventHandlers returns no handlers; the module is purely command-driven.
func (m *Module) EventHandlers() []bot.EventHandler {
	return nil
}

// Shutdown is a no-op; the HTTP client holds no persistent resources.
func (m *Module) Shutdown() error {
	return nil
}

// Ensure Module implements the bot interfaces.
var (
	_ bot.Module             = (*Module)(nil)
	_ bot.ConfigurableModule = (*Module)(nil)
)
