package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/PedroPerillo/dndice/internal/services/dice"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	"github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/bwmarrin/discordgo"
)

// Discord drops interactions that are not answered within three seconds
const interactionTimeout = 2500 * time.Millisecond

// Subcommand names
const (
	SubcommandRoll   = "roll"
	SubcommandSave   = "save"
	SubcommandList   = "list"
	SubcommandDelete = "delete"
	SubcommandQuick  = "quick"
)

// IdentityPrefix namespaces Discord user ids inside the shared preset store
const IdentityPrefix = "discord:"

// DndiceCommand handles the /dndice command
type DndiceCommand struct {
	BaseCommand
	diceService      dice.Service
	quickRollService quick_roll.Service
	messagingService messaging.Service
	logger           *slog.Logger
}

// caller is the Discord user behind an interaction
type caller struct {
	id   string
	name string
}

// reply is what a subcommand wants sent back
type reply struct {
	embed     *discordgo.MessageEmbed
	ephemeral bool
}

// NewDndiceCommand creates a new dndice command handler. messagingService
// is optional and adds commentary to notable rolls.
func NewDndiceCommand(diceService dice.Service, quickRollService quick_roll.Service, messagingService messaging.Service, logger *slog.Logger) *DndiceCommand {
	if logger == nil {
		logger = slog.Default()
	}

	notation := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "notation",
		Description: "Dice to roll, e.g. 2d20+3",
		Required:    true,
	}

	return &DndiceCommand{
		BaseCommand: BaseCommand{
			Name:        "dndice",
			Description: "Roll dice and manage quick rolls",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandRoll,
					Description: "Roll dice",
					Options:     []*discordgo.ApplicationCommandOption{notation},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandSave,
					Description: "Save a quick roll",
					Options: []*discordgo.ApplicationCommandOption{
						notation,
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Optional name, e.g. Longsword",
							MaxLength:   models.MaxNameLength,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandList,
					Description: "List your quick rolls",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandDelete,
					Description: "Delete a quick roll",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "id",
							Description: "Id shown by /dndice list",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        SubcommandQuick,
					Description: "Roll one of your quick rolls",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Quick roll name or id",
							Required:    true,
						},
					},
				},
			},
		},
		diceService:      diceService,
		quickRollService: quickRollService,
		messagingService: messagingService,
		logger:           logger,
	}
}

// Handle processes a Discord interaction for the dndice command
func (c *DndiceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	sub := data.Options[0]
	r, err := c.execute(ctx, interactionCaller(i), sub)
	if err != nil {
		c.logger.Warn("dndice command failed",
			"subcommand", sub.Name,
			"error", err,
		)
		return RespondWithError(s, i, userMessage(err))
	}

	if r.ephemeral {
		return RespondWithEphemeralEmbed(s, i, r.embed)
	}
	return RespondWithEmbed(s, i, r.embed)
}

func (c *DndiceCommand) execute(ctx context.Context, who caller, sub *discordgo.ApplicationCommandInteractionDataOption) (*reply, error) {
	if who.id == "" {
		return nil, quick_roll.ErrNotAuthenticated
	}
	scope := quick_roll.Scope{Identity: &models.Identity{ID: IdentityPrefix + who.id}}

	switch sub.Name {
	case SubcommandRoll:
		return c.handleRoll(ctx, who, optionString(sub.Options, "notation"))
	case SubcommandSave:
		return c.handleSave(ctx, scope, optionString(sub.Options, "notation"), optionString(sub.Options, "name"))
	case SubcommandList:
		return c.handleList(ctx, scope)
	case SubcommandDelete:
		return c.handleDelete(ctx, scope, optionString(sub.Options, "id"))
	case SubcommandQuick:
		return c.handleQuick(ctx, who, scope, optionString(sub.Options, "name"))
	default:
		return nil, fmt.Errorf("unknown subcommand %q", sub.Name)
	}
}

func (c *DndiceCommand) handleRoll(ctx context.Context, who caller, notation string) (*reply, error) {
	parsed, err := dice.ParseNotation(notation)
	if err != nil {
		return nil, err
	}

	result, err := c.roll(ctx, parsed.Count, parsed.DieSize, parsed.Modifier)
	if err != nil {
		return nil, err
	}

	return &reply{embed: renderRoll("", result, c.commentary(ctx, who, result))}, nil
}

func (c *DndiceCommand) handleSave(ctx context.Context, scope quick_roll.Scope, notation, name string) (*reply, error) {
	parsed, err := dice.ParseNotation(notation)
	if err != nil {
		return nil, err
	}

	output, err := c.quickRollService.CreateQuickRoll(ctx, &quick_roll.CreateQuickRollInput{
		Scope: scope,
		Draft: quick_roll.Draft{
			Name:     name,
			Count:    parsed.Count,
			DieSize:  parsed.DieSize,
			Modifier: parsed.Modifier,
		},
	})
	if err != nil {
		return nil, err
	}

	return &reply{embed: renderSaved(output.QuickRoll), ephemeral: true}, nil
}

func (c *DndiceCommand) handleList(ctx context.Context, scope quick_roll.Scope) (*reply, error) {
	output, err := c.quickRollService.ListQuickRolls(ctx, &quick_roll.ListQuickRollsInput{
		Scope: scope,
	})
	if err != nil {
		return nil, err
	}

	return &reply{embed: renderQuickRolls(output.QuickRolls), ephemeral: true}, nil
}

func (c *DndiceCommand) handleDelete(ctx context.Context, scope quick_roll.Scope, id string) (*reply, error) {
	id = strings.TrimSpace(id)
	if err := c.quickRollService.DeleteQuickRoll(ctx, &quick_roll.DeleteQuickRollInput{
		Scope: scope,
		ID:    id,
	}); err != nil {
		return nil, err
	}

	return &reply{embed: renderDeleted(id), ephemeral: true}, nil
}

// handleQuick matches an id first, then a display name ignoring case
func (c *DndiceCommand) handleQuick(ctx context.Context, who caller, scope quick_roll.Scope, key string) (*reply, error) {
	key = strings.TrimSpace(key)

	output, err := c.quickRollService.ListQuickRolls(ctx, &quick_roll.ListQuickRollsInput{
		Scope: scope,
	})
	if err != nil {
		return nil, err
	}

	preset := findQuickRoll(output.QuickRolls, key)
	if preset == nil {
		return nil, fmt.Errorf("%w: %q", quick_roll.ErrQuickRollNotFound, key)
	}

	result, err := c.roll(ctx, preset.Count, preset.DieSize, preset.Modifier)
	if err != nil {
		return nil, err
	}

	return &reply{embed: renderRoll(preset.DisplayName(), result, c.commentary(ctx, who, result))}, nil
}

func (c *DndiceCommand) roll(ctx context.Context, count, dieSize, modifier int) (*models.RollResult, error) {
	output, err := c.diceService.Roll(ctx, &dice.RollInput{
		Count:    count,
		DieSize:  dieSize,
		Modifier: modifier,
	})
	if err != nil {
		return nil, err
	}
	return output.Result, nil
}

// commentary is best effort, a failure only loses the flavor text
func (c *DndiceCommand) commentary(ctx context.Context, who caller, result *models.RollResult) *messaging.GetRollCommentaryOutput {
	if c.messagingService == nil {
		return nil
	}

	output, err := c.messagingService.GetRollCommentary(ctx, &messaging.GetRollCommentaryInput{
		Result:     result,
		RollerName: who.name,
	})
	if err != nil {
		c.logger.Debug("failed to get roll commentary", "error", err)
		return nil
	}
	return output
}

func findQuickRoll(presets []*models.QuickRoll, key string) *models.QuickRoll {
	if key == "" {
		return nil
	}
	for _, q := range presets {
		if q.ID == key {
			return q
		}
	}
	for _, q := range presets {
		if strings.EqualFold(q.DisplayName(), key) {
			return q
		}
	}
	return nil
}

func optionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// interactionCaller works for guild and direct message interactions.
// Guild nicknames win over usernames.
func interactionCaller(i *discordgo.InteractionCreate) caller {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.Nick
		if name == "" {
			name = i.Member.User.Username
		}
		return caller{id: i.Member.User.ID, name: name}
	}
	if i.User != nil {
		return caller{id: i.User.ID, name: i.User.Username}
	}
	return caller{}
}

// userMessage hides store internals from the channel
func userMessage(err error) string {
	switch {
	case errors.Is(err, dice.ErrInvalidNotation):
		return "Couldn't read that dice notation. Try something like `2d20+3`."
	case errors.Is(err, quick_roll.ErrValidation):
		return err.Error()
	case errors.Is(err, quick_roll.ErrQuickRollNotFound):
		return "No quick roll matches that name or id. Use `/dndice list` to see yours."
	case errors.Is(err, quick_roll.ErrStoreUnavailable):
		return "Quick rolls are unavailable right now, try again shortly."
	case errors.Is(err, quick_roll.ErrNotAuthenticated):
		return "Couldn't tell who you are."
	default:
		return "Something went wrong."
	}
}
