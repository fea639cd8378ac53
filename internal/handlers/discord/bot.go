package discord

import (
	"fmt"
	"log/slog"

	"github.com/PedroPerillo/dndice/internal/services/dice"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	"github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/bwmarrin/discordgo"
)

// Bot represents the Discord bot instance
type Bot struct {
	session    *discordgo.Session
	commands   map[string]CommandHandler
	commandIDs map[string]string // Maps command name to command ID
	config     *Config
	logger     *slog.Logger
}

// Config holds the configuration for the bot
type Config struct {
	// Discord bot token
	Token string

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	DiceService      dice.Service
	QuickRollService quick_roll.Service

	// MessagingService adds commentary to notable rolls, optional
	MessagingService messaging.Service

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Token == "" {
		return nil, ErrMissingToken
	}

	if cfg.DiceService == nil {
		return nil, ErrNilDiceService
	}

	if cfg.QuickRollService == nil {
		return nil, ErrNilQuickRollService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	bot := &Bot{
		session:    session,
		commands:   make(map[string]CommandHandler),
		commandIDs: make(map[string]string),
		config:     cfg,
		logger:     logger.With("component", "discord"),
	}

	session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start opens the gateway connection and registers /dndice
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	cmd := NewDndiceCommand(b.config.DiceService, b.config.QuickRollService, b.config.MessagingService, b.logger)
	if err := b.RegisterCommand(cmd); err != nil {
		return fmt.Errorf("failed to register dndice command: %w", err)
	}

	b.logger.Info("discord bot running")
	return nil
}

// Stop removes registered commands and closes the connection
func (b *Bot) Stop() error {
	appID, guildID := b.target()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, guildID, cmdID); err != nil {
			b.logger.Warn("failed to delete command", "command", cmdName, "id", cmdID, "error", err)
			continue
		}
		b.logger.Debug("deleted command", "command", cmdName, "id", cmdID)
	}

	return b.session.Close()
}

// RegisterCommand registers a command with Discord. Commands are global
// unless a guild id is configured.
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	appID, guildID := b.target()

	createdCmd, err := b.session.ApplicationCommandCreate(appID, guildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("registered command",
		"command", cmd.GetName(),
		"id", createdCmd.ID,
		"guild", guildID,
	)

	return nil
}

// target falls back to the session user when no application id is set
func (b *Bot) target() (appID, guildID string) {
	appID = b.config.ApplicationID
	if appID == "" && b.session.State != nil && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}
	return appID, b.config.GuildID
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	h, ok := b.commands[name]
	if !ok {
		return
	}

	if err := h.Handle(s, i); err != nil {
		b.logger.Error("failed to handle command", "command", name, "error", err)
	}
}
