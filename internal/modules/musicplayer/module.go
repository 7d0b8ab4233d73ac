// Package musicplayer provides per-guild voice and music playback commands
// backed by a Lavalink node.
package musicplayer

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/arvoh/manabot/internal/bot"
	"github.com/arvoh/manabot/internal/modules/musicplayer/application/usecases"
	"github.com/arvoh/manabot/internal/modules/musicplayer/infrastructure"
	pdiscord "github.com/arvoh/manabot/internal/modules/musicplayer/presentation/discord"
)

func init() {
	bot.Register(&Module{})
}

// Module is the music player bot module.
type Module struct {
	config   *Config
	gateway  *infrastructure.LavalinkGateway
	handlers *pdiscord.CommandHandlers
}

// Name returns the module name.
func (m *Module) Name() string {
	return "musicplayer"
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

// Init wires the module's services. Requires an open Discord session.
func (m *Module) Init(deps bot.ModuleDependencies) error {
	if m.config == nil {
		return fmt.Errorf("musicplayer: config not loaded")
	}

	gateway, err := infrastructure.NewLavalinkGateway(deps.Session, infrastructure.LavalinkConfig{
		Address:  m.config.LavalinkAddress,
		Password: m.config.LavalinkPassword,
	})
	if err != nil {
		return fmt.Errorf("musicplayer: %w", err)
	}
	m.gateway = gateway

	repo := infrastructure.NewMemoryRepository()
	voiceState := infrastructure.NewVoiceStateProvider(deps.Session)

	voiceChannel := usecases.NewVoiceChannelService(repo, gateway, voiceState)
	playback := usecases.NewPlaybackService(repo, gateway)
	loader := usecases.NewTrackLoaderService(gateway)

	gateway.SetTrackEndHandler(playback.HandleTrackEnd)

	m.handlers = pdiscord.NewCommandHandlers(
		voiceChannel,
		playback,
		loader,
		deps.Presence,
		deps.Config.DeleteCommandMessages,
	)

	slog.Info("music player module initialized", "lavalink", m.config.LavalinkAddress)
	return nil
}

// Commands returns the module's message commands.
func (m *Module) Commands() []*bot.MessageCommand {
	return m.handlers.Commands()
}

// EventHandlers returns the Discord event handlers that feed the voice
// handshake into the Lavalink transport.
func (m *Module) EventHandlers() []bot.EventHandler {
	return []bot.EventHandler{
		func(_ *discordgo.Session, event *discordgo.VoiceServerUpdate) {
			if m.gateway != nil {
				m.gateway.HandleVoiceServerUpdate(event)
			}
		},
		func(_ *discordgo.Session, event *discordgo.VoiceStateUpdate) {
			if m.gateway != nil {
				m.gateway.HandleVoiceStateUpdate(event)
			}
		},
	}
}

// Shutdown closes the Lavalink connection.
func (m *Module) Shutdown() error {
	if m.gateway != nil {
		m.gateway.Close()
	}
	return nil
}

// Ensure Module implements the bot interfaces.
var (
	_ bot.Module             = (*Module)(nil)
	_ bot.ConfigurableModule = (*Module)(nil)
)
