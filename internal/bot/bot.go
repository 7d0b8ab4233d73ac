package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// Bot manages the Discord bot lifecycle and module coordination.
type Bot struct {
	config    *Config
	session   *discordgo.Session
	modules   []Module
	router    *Router
	messenger Messenger
	presence  *Presence
}

// NewBot creates a new Bot instance with the given configuration.
func NewBot(cfg *Config) *Bot {
	return &Bot{
		config:  cfg,
		modules: make([]Module, 0),
		router:  NewRouter(cfg.Prefixes),
	}
}

// LoadModules loads modules from the global registry.
func (b *Bot) LoadModules() {
	b.modules = Modules()
}

// Start initializes the bot, connects to Discord, and registers commands.
func (b *Bot) Start() error {
	// Create Discord session
	session, err := discordgo.New("Bot " + b.config.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}
	b.session = session
	b.messenger = NewDiscordMessenger(session)
	b.presence = NewPresence(func(text string) error {
		return session.UpdateGameStatus(0, text)
	})

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	// Load module configs before touching the network
	if err := b.loadModuleConfigs(); err != nil {
		return err
	}

	// Message dispatch and ready handler
	session.AddHandler(b.handleMessage)
	session.AddHandler(b.handleReady)

	// Open connection
	if err := session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	// Initialize modules (some need the open session, e.g. for the bot ID)
	if err := b.initModules(); err != nil {
		return err
	}

	// Build routing table from module commands plus built-ins
	for _, mod := range b.modules {
		b.router.Register(mod.Commands()...)
	}
	b.router.Register(b.builtinCommands()...)

	// Register module event handlers
	b.registerEventHandlers()

	slog.Info("started bot",
		"user_id", b.session.State.User.ID,
		"username", b.session.State.User.Username,
		"prefixes", b.config.Prefixes,
	)

	return nil
}

// Stop gracefully shuts down the bot.
func (b *Bot) Stop() error {
	// Shutdown modules
	for _, mod := range b.modules {
		if err := mod.Shutdown(); err != nil {
			slog.Warn("failed to shutdown module", "module", mod.Name(), "error", err)
		}
	}

	// Close Discord session
	if b.session != nil {
		return b.session.Close()
	}

	return nil
}

// loadModuleConfigs loads configuration for modules that require it.
func (b *Bot) loadModuleConfigs() error {
	for _, mod := range b.modules {
		cm, ok := mod.(ConfigurableModule)
		if !ok {
			continue
		}
		if err := cm.LoadConfig(); err != nil {
			return fmt.Errorf("failed to load %s module config: %w", mod.Name(), err)
		}
	}
	return nil
}

// initModules initializes all loaded modules.
func (b *Bot) initModules() error {
	deps := ModuleDependencies{
		Config:    b.config,
		Session:   b.session,
		Messenger: b.messenger,
		Presence:  b.presence,
	}

	for _, mod := range b.modules {
		if err := mod.Init(deps); err != nil {
			return fmt.Errorf("failed to initialize %s module: %w", mod.Name(), err)
		}
		slog.Debug("initialized module", "module", mod.Name())
	}

	moduleNames := make([]string, len(b.modules))
	for i, mod := range b.modules {
		moduleNames[i] = mod.Name()
	}
	slog.Info("initialized modules", "modules", moduleNames)

	return nil
}

// registerEventHandlers registers all module event handlers with the session.
func (b *Bot) registerEventHandlers() {
	for _, mod := range b.modules {
		for _, handler := range mod.EventHandlers() {
			b.session.AddHandler(handler)
		}
	}
}

// handleReady sets the startup presence once the gateway confirms the session.
func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, guild := range r.Guilds {
		slog.Info("connected to guild", "guild_id", guild.ID)
	}
	b.presence.Reset()
}

// handleMessage routes incoming messages through the command router.
// Each matched command runs in its own goroutine so a slow collaborator call
// never blocks dispatch for other commands.
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	cmd, args, ok := b.router.Match(m.Content)
	if !ok {
		return
	}

	// Guild-only commands are dropped silently in DMs
	if cmd.GuildOnly && m.GuildID == "" {
		return
	}

	go b.runCommand(cmd, s, m, args)
}

// runCommand executes a handler, converting any escaped error into a generic
// reply. Handlers map collaborator failures to specific messages themselves;
// an error reaching this point is a bug, not a user mistake.
func (b *Bot) runCommand(cmd *MessageCommand, s *discordgo.Session, m *discordgo.MessageCreate, args string) {
	if err := cmd.Handler(s, m, args, b.messenger); err != nil {
		slog.Error("failed to handle command",
			"command", cmd.Name,
			"guild_id", m.GuildID,
			"error", err,
		)
		if sendErr := b.messenger.Send(m.ChannelID, "An error occurred while processing your command."); sendErr != nil {
			slog.Error("failed to send error reply", "command", cmd.Name, "error", sendErr)
		}
	}
}
