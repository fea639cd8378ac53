package discord

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/PedroPerillo/dndice/internal/services/dice"
	diceMocks "github.com/PedroPerillo/dndice/internal/services/dice/mocks"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	messagingMocks "github.com/PedroPerillo/dndice/internal/services/messaging/mocks"
	"github.com/PedroPerillo/dndice/internal/services/quick_roll"
	quickRollMocks "github.com/PedroPerillo/dndice/internal/services/quick_roll/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DndiceCommandTestSuite struct {
	suite.Suite
	mockCtrl      *gomock.Controller
	mockDice      *diceMocks.MockService
	mockQuickRoll *quickRollMocks.MockService
	mockMessaging *messagingMocks.MockService
	command       *DndiceCommand
	ctx           context.Context

	who     caller
	scope   quick_roll.Scope
	presets []*models.QuickRoll
}

func (s *DndiceCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDice = diceMocks.NewMockService(s.mockCtrl)
	s.mockQuickRoll = quickRollMocks.NewMockService(s.mockCtrl)
	s.mockMessaging = messagingMocks.NewMockService(s.mockCtrl)
	s.command = NewDndiceCommand(s.mockDice, s.mockQuickRoll, s.mockMessaging, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.ctx = context.Background()

	s.who = caller{id: "42", name: "Alice"}
	s.scope = quick_roll.Scope{Identity: &models.Identity{ID: "discord:42"}}
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.presets = []*models.QuickRoll{
		{ID: "p2", OwnerID: "discord:42", Name: "Longsword", Count: 1, DieSize: 20, Modifier: 5, CreatedAt: created},
		{ID: "p1", OwnerID: "discord:42", Count: 2, DieSize: 6, CreatedAt: created.Add(-time.Hour)},
	}
}

func (s *DndiceCommandTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func subcommand(name string, options ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:    name,
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Options: options,
	}
}

func (s *DndiceCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()

	s.Equal("dndice", cmd.Name)
	var names []string
	for _, opt := range cmd.Options {
		names = append(names, opt.Name)
	}
	s.Equal([]string{SubcommandRoll, SubcommandSave, SubcommandList, SubcommandDelete, SubcommandQuick}, names)
}

func (s *DndiceCommandTestSuite) TestRoll() {
	result := &models.RollResult{Count: 2, DieSize: 20, IndividualRolls: []int{7, 15}, DiceSum: 22, ModifierApplied: 3, Total: 25, Highest: 15}

	s.mockDice.EXPECT().
		Roll(gomock.Any(), &dice.RollInput{Count: 2, DieSize: 20, Modifier: 3}).
		Return(&dice.RollOutput{Result: result}, nil)
	s.mockMessaging.EXPECT().
		GetRollCommentary(gomock.Any(), &messaging.GetRollCommentaryInput{Result: result, RollerName: "Alice"}).
		Return(&messaging.GetRollCommentaryOutput{Moment: messaging.MomentNone}, nil)

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandRoll, stringOption("notation", "2d20+3")))

	s.Require().NoError(err)
	s.False(r.ephemeral)
	s.Equal("🎲 2d20+3", r.embed.Title)
	s.Equal("**Total: 25**", r.embed.Description)
}

func (s *DndiceCommandTestSuite) TestRollBadNotation() {
	_, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandRoll, stringOption("notation", "2d7")))

	s.ErrorIs(err, dice.ErrInvalidNotation)
}

func (s *DndiceCommandTestSuite) TestSave() {
	saved := &models.QuickRoll{ID: "p3", OwnerID: "discord:42", Name: "Fireball", Count: 8, DieSize: 6}

	s.mockQuickRoll.EXPECT().
		CreateQuickRoll(gomock.Any(), &quick_roll.CreateQuickRollInput{
			Scope: s.scope,
			Draft: quick_roll.Draft{Name: "Fireball", Count: 8, DieSize: 6},
		}).
		Return(&quick_roll.CreateQuickRollOutput{QuickRoll: saved}, nil)

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandSave,
		stringOption("notation", "8d6"),
		stringOption("name", "Fireball"),
	))

	s.Require().NoError(err)
	s.True(r.ephemeral)
	s.Equal("**Fireball** (8d6)", r.embed.Description)
	s.Equal("id p3", r.embed.Footer.Text)
}

func (s *DndiceCommandTestSuite) TestList() {
	s.mockQuickRoll.EXPECT().
		ListQuickRolls(gomock.Any(), &quick_roll.ListQuickRollsInput{Scope: s.scope}).
		Return(&quick_roll.ListQuickRollsOutput{QuickRolls: s.presets}, nil)

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandList))

	s.Require().NoError(err)
	s.True(r.ephemeral)
	s.Equal("`p2` **Longsword** (1d20+5)\n`p1` **2d6**", r.embed.Description)
}

func (s *DndiceCommandTestSuite) TestDelete() {
	s.mockQuickRoll.EXPECT().
		DeleteQuickRoll(gomock.Any(), &quick_roll.DeleteQuickRollInput{Scope: s.scope, ID: "p1"}).
		Return(nil)

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandDelete, stringOption("id", " p1 ")))

	s.Require().NoError(err)
	s.Equal("Quick roll deleted", r.embed.Title)
}

func (s *DndiceCommandTestSuite) TestQuickByName() {
	result := &models.RollResult{Count: 1, DieSize: 20, IndividualRolls: []int{12}, DiceSum: 12, ModifierApplied: 5, Total: 17, Highest: 12}

	s.mockQuickRoll.EXPECT().
		ListQuickRolls(gomock.Any(), &quick_roll.ListQuickRollsInput{Scope: s.scope}).
		Return(&quick_roll.ListQuickRollsOutput{QuickRolls: s.presets}, nil)
	s.mockDice.EXPECT().
		Roll(gomock.Any(), &dice.RollInput{Count: 1, DieSize: 20, Modifier: 5}).
		Return(&dice.RollOutput{Result: result}, nil)

	s.mockMessaging.EXPECT().
		GetRollCommentary(gomock.Any(), gomock.Any()).
		Return(&messaging.GetRollCommentaryOutput{Moment: messaging.MomentNone}, nil)

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandQuick, stringOption("name", "longsword")))

	s.Require().NoError(err)
	s.Equal("🎲 Longsword", r.embed.Title)
	s.Equal("**Total: 17**", r.embed.Description)
}

func (s *DndiceCommandTestSuite) TestQuickByID() {
	result := &models.RollResult{Count: 2, DieSize: 6, IndividualRolls: []int{1, 4}, DiceSum: 5, Total: 5, Highest: 4}

	s.mockQuickRoll.EXPECT().
		ListQuickRolls(gomock.Any(), gomock.Any()).
		Return(&quick_roll.ListQuickRollsOutput{QuickRolls: s.presets}, nil)
	s.mockDice.EXPECT().
		Roll(gomock.Any(), &dice.RollInput{Count: 2, DieSize: 6}).
		Return(&dice.RollOutput{Result: result}, nil)

	s.mockMessaging.EXPECT().
		GetRollCommentary(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("no words"))

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandQuick, stringOption("name", "p1")))

	s.Require().NoError(err)
	s.Equal("🎲 2d6", r.embed.Title)
	s.Equal("**Total: 5**", r.embed.Description)
}

func (s *DndiceCommandTestSuite) TestQuickNotFound() {
	s.mockQuickRoll.EXPECT().
		ListQuickRolls(gomock.Any(), gomock.Any()).
		Return(&quick_roll.ListQuickRollsOutput{QuickRolls: s.presets}, nil)

	_, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandQuick, stringOption("name", "Greataxe")))

	s.ErrorIs(err, quick_roll.ErrQuickRollNotFound)
}

func (s *DndiceCommandTestSuite) TestStoreUnavailable() {
	storeErr := errors.Join(quick_roll.ErrStoreUnavailable, errors.New("dial tcp: connection refused"))

	s.mockQuickRoll.EXPECT().
		ListQuickRolls(gomock.Any(), gomock.Any()).
		Return(nil, storeErr)

	_, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandList))

	s.Require().Error(err)
	s.Equal("Quick rolls are unavailable right now, try again shortly.", userMessage(err))
}

func (s *DndiceCommandTestSuite) TestMissingUser() {
	_, err := s.command.execute(s.ctx, caller{}, subcommand(SubcommandList))

	s.ErrorIs(err, quick_roll.ErrNotAuthenticated)
}

func (s *DndiceCommandTestSuite) TestUnknownSubcommand() {
	_, err := s.command.execute(s.ctx, s.who, subcommand("shuffle"))

	s.Error(err)
	s.Equal("Something went wrong.", userMessage(err))
}

func (s *DndiceCommandTestSuite) TestRollCritical() {
	result := &models.RollResult{Count: 1, DieSize: 20, IndividualRolls: []int{20}, DiceSum: 20, Total: 20, Highest: 20}

	s.mockDice.EXPECT().
		Roll(gomock.Any(), &dice.RollInput{Count: 1, DieSize: 20}).
		Return(&dice.RollOutput{Result: result}, nil)
	s.mockMessaging.EXPECT().
		GetRollCommentary(gomock.Any(), gomock.Any()).
		Return(&messaging.GetRollCommentaryOutput{Moment: messaging.MomentCritical, Title: "CRIT!", Message: "Alice rolled a natural 20! That's 20."}, nil)

	r, err := s.command.execute(s.ctx, s.who, subcommand(SubcommandRoll, stringOption("notation", "d20")))

	s.Require().NoError(err)
	s.Equal("**Total: 20**\n*CRIT!* Alice rolled a natural 20! That's 20.", r.embed.Description)
}

func (s *DndiceCommandTestSuite) TestInteractionCaller() {
	s.Equal(caller{id: "7", name: "Gandalf"}, interactionCaller(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "Gandalf", User: &discordgo.User{ID: "7", Username: "mithrandir"}},
	}}))
	s.Equal(caller{id: "7", name: "mithrandir"}, interactionCaller(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "7", Username: "mithrandir"}},
	}}))
	s.Equal(caller{id: "8", name: "frodo"}, interactionCaller(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "8", Username: "frodo"},
	}}))
	s.Equal(caller{}, interactionCaller(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}

func TestDndiceCommandSuite(t *testing.T) {
	suite.Run(t, new(DndiceCommandTestSuite))
}
