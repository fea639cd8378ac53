// Package cli is an interactive terminal client: roll dice, keep quick rolls
// on this machine while anonymous, and follow a signed-in user's shared
// presets after login.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PedroPerillo/dndice/internal/auth"
	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/models"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	"github.com/PedroPerillo/dndice/internal/services/dice"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	"github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/PedroPerillo/dndice/internal/services/session"
)

const prompt = "> "

// Config holds configuration for the terminal client
type Config struct {
	In  io.Reader
	Out io.Writer

	DiceService      dice.Service
	QuickRollService quick_roll.Service

	// MessagingService comments on notable rolls, optional
	MessagingService messaging.Service

	// Local keeps anonymous presets on this machine
	Local quickRollRepo.Repository

	// Gate is switched by login and logout
	Gate *session.StaticGate

	// Verifier checks login tokens, nil disables login
	Verifier *auth.Verifier

	// Clock and DisplayDelay drive the rolling pause
	Clock        clock.Clock
	DisplayDelay time.Duration

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// CLI reads commands line by line and writes results
type CLI struct {
	in       *bufio.Scanner
	out      io.Writer
	table    *dice.Table
	comments messaging.Service
	shelf    *session.Shelf
	gate     *session.StaticGate
	verifier *auth.Verifier
	delay    time.Duration
	logger   *slog.Logger
}

type command struct {
	usage string
	help  string
	run   func(c *CLI, ctx context.Context, args []string) error
}

var commands map[string]command

var commandOrder = []string{"roll", "d20", "save", "list", "use", "delete", "login", "logout", "whoami", "help", "quit"}

func init() {
	commands = map[string]command{
		"roll":   {"roll <notation>", "roll dice, e.g. roll 2d20+3", (*CLI).cmdRoll},
		"d20":    {"d20 [n]", "roll n d20s, n is one of 1, 2, 3, 6", (*CLI).cmdD20},
		"save":   {"save <notation> [name]", "save a quick roll", (*CLI).cmdSave},
		"list":   {"list", "show your quick rolls", (*CLI).cmdList},
		"use":    {"use <n>", "roll quick roll number n", (*CLI).cmdUse},
		"delete": {"delete <n>", "delete quick roll number n", (*CLI).cmdDelete},
		"login":  {"login <token>", "sign in to use your shared quick rolls", (*CLI).cmdLogin},
		"logout": {"logout", "go back to this machine's quick rolls", (*CLI).cmdLogout},
		"whoami": {"whoami", "show who the quick rolls belong to", (*CLI).cmdWhoami},
		"help":   {"help", "show this list", (*CLI).cmdHelp},
		"quit":   {"quit", "leave", nil},
	}
}

// New creates a terminal client and starts loading the current scope's presets
func New(cfg *Config) (*CLI, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.In == nil || cfg.Out == nil {
		return nil, ErrNilIO
	}

	if cfg.DiceService == nil {
		return nil, ErrNilDiceService
	}

	if cfg.QuickRollService == nil {
		return nil, ErrNilQuickRollService
	}

	if cfg.Local == nil {
		return nil, ErrNilLocal
	}

	if cfg.Gate == nil {
		return nil, ErrNilGate
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	table, err := dice.NewTable(&dice.TableConfig{
		Service:      cfg.DiceService,
		Clock:        cfg.Clock,
		DisplayDelay: cfg.DisplayDelay,
	})
	if err != nil {
		return nil, err
	}

	shelf, err := session.NewShelf(&session.ShelfConfig{
		Gate:    cfg.Gate,
		Service: cfg.QuickRollService,
		Local:   cfg.Local,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	return &CLI{
		in:       bufio.NewScanner(cfg.In),
		out:      cfg.Out,
		table:    table,
		comments: cfg.MessagingService,
		shelf:    shelf,
		gate:     cfg.Gate,
		verifier: cfg.Verifier,
		delay:    cfg.DisplayDelay,
		logger:   logger,
	}, nil
}

// Run reads commands until quit, end of input or ctx is done
func (c *CLI) Run(ctx context.Context) error {
	c.shelf.Wait()
	c.printf("dndice, type help for commands\n")

	for {
		if ctx.Err() != nil {
			return nil
		}

		c.printf(prompt)
		if !c.in.Scan() {
			c.printf("\n")
			return c.in.Err()
		}

		fields := strings.Fields(c.in.Text())
		if len(fields) == 0 {
			continue
		}

		name := strings.ToLower(fields[0])
		if name == "exit" {
			name = "quit"
		}

		cmd, ok := commands[name]
		if !ok {
			c.printf("unknown command %q, try help\n", fields[0])
			continue
		}

		if cmd.run == nil {
			return nil
		}

		if err := cmd.run(c, ctx, fields[1:]); err != nil {
			c.printf("error: %v\n", err)
		}
	}
}

// Close stops following the gate
func (c *CLI) Close() {
	c.shelf.Close()
}

func (c *CLI) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) roll(ctx context.Context, title string, count, dieSize, modifier int) error {
	if c.delay > 0 {
		c.printf("rolling...\n")
	}

	result, err := c.table.Roll(ctx, &dice.RollInput{
		Count:    count,
		DieSize:  dieSize,
		Modifier: modifier,
	})
	if err != nil {
		return err
	}

	c.printf("%s\n", formatResult(title, result))

	if c.comments != nil {
		out, err := c.comments.GetRollCommentary(ctx, &messaging.GetRollCommentaryInput{Result: result})
		if err == nil && out.Moment != messaging.MomentNone {
			c.printf("  %s %s\n", out.Title, out.Message)
		}
	}
	return nil
}

func (c *CLI) cmdRoll(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("roll")
	}

	n, err := dice.ParseNotation(strings.Join(args, ""))
	if err != nil {
		return err
	}

	return c.roll(ctx, n.Label(), n.Count, n.DieSize, n.Modifier)
}

func (c *CLI) cmdD20(ctx context.Context, args []string) error {
	count := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || !slices.Contains(dice.QuickD20Counts, n) {
			return usageError("d20")
		}
		count = n
	}

	return c.roll(ctx, models.FormatLabel(count, 20, 0), count, 20, 0)
}

func (c *CLI) cmdSave(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("save")
	}

	n, err := dice.ParseNotation(args[0])
	if err != nil {
		return err
	}

	q, err := c.shelf.Add(ctx, quick_roll.Draft{
		Name:     strings.Join(args[1:], " "),
		Count:    n.Count,
		DieSize:  n.DieSize,
		Modifier: n.Modifier,
	})
	if err != nil {
		return err
	}

	c.printf("saved %s\n", describe(q))
	return nil
}

func (c *CLI) cmdList(ctx context.Context, args []string) error {
	items := c.shelf.Items()
	if len(items) == 0 {
		c.printf("no quick rolls saved\n")
		return nil
	}

	for n, q := range items {
		c.printf("%3d. %s\n", n+1, describe(q))
	}
	return nil
}

func (c *CLI) cmdUse(ctx context.Context, args []string) error {
	q, err := c.pick(args, "use")
	if err != nil {
		return err
	}

	return c.roll(ctx, q.DisplayName(), q.Count, q.DieSize, q.Modifier)
}

func (c *CLI) cmdDelete(ctx context.Context, args []string) error {
	q, err := c.pick(args, "delete")
	if err != nil {
		return err
	}

	if err := c.shelf.Remove(ctx, q.ID); err != nil {
		return err
	}

	c.printf("deleted %s\n", q.DisplayName())
	return nil
}

func (c *CLI) cmdLogin(ctx context.Context, args []string) error {
	if c.verifier == nil {
		return ErrSignInDisabled
	}

	if len(args) != 1 {
		return usageError("login")
	}

	identity, err := c.verifier.Verify(ctx, args[0])
	if err != nil {
		return err
	}

	c.gate.SignIn(identity)
	c.shelf.Wait()

	c.printf("signed in as %s\n", displayIdentity(identity))
	return nil
}

func (c *CLI) cmdLogout(ctx context.Context, args []string) error {
	if c.gate.Current() == nil {
		c.printf("not signed in\n")
		return nil
	}

	c.gate.SignOut()
	c.shelf.Wait()

	c.printf("signed out\n")
	return nil
}

func (c *CLI) cmdWhoami(ctx context.Context, args []string) error {
	identity := c.shelf.Identity()
	if identity == nil {
		c.printf("anonymous, quick rolls stay on this machine\n")
		return nil
	}

	c.printf("signed in as %s\n", displayIdentity(identity))
	return nil
}

func (c *CLI) cmdHelp(ctx context.Context, args []string) error {
	for _, name := range commandOrder {
		cmd := commands[name]
		c.printf("  %-24s %s\n", cmd.usage, cmd.help)
	}
	return nil
}

// pick resolves a 1-based list position
func (c *CLI) pick(args []string, name string) (*models.QuickRoll, error) {
	if len(args) != 1 {
		return nil, usageError(name)
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, usageError(name)
	}

	items := c.shelf.Items()
	if n < 1 || n > len(items) {
		return nil, fmt.Errorf("%w: no quick roll number %d", quick_roll.ErrQuickRollNotFound, n)
	}

	return items[n-1], nil
}

func usageError(name string) error {
	return fmt.Errorf("usage: %s", commands[name].usage)
}

func describe(q *models.QuickRoll) string {
	if q.DisplayName() == q.Label() {
		return q.Label()
	}
	return fmt.Sprintf("%s (%s)", q.DisplayName(), q.Label())
}

func displayIdentity(identity *models.Identity) string {
	if identity.Email != "" {
		return identity.Email
	}
	return identity.ID
}

func formatResult(title string, r *models.RollResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %v", title, r.IndividualRolls)
	if r.ModifierApplied != 0 {
		fmt.Fprintf(&b, " %+d", r.ModifierApplied)
	}
	fmt.Fprintf(&b, " = %d", r.Total)
	if r.Count > 1 {
		fmt.Fprintf(&b, " (highest %d)", r.Highest)
	}
	return b.String()
}
