package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PedroPerillo/dndice/internal/auth"
	"github.com/PedroPerillo/dndice/internal/bootstrap"
	"github.com/PedroPerillo/dndice/internal/config"
	"github.com/PedroPerillo/dndice/internal/dice"
	"github.com/PedroPerillo/dndice/internal/handlers/api"
	"github.com/PedroPerillo/dndice/internal/handlers/discord"
	"github.com/PedroPerillo/dndice/internal/logger"
	"github.com/PedroPerillo/dndice/internal/models"
	diceService "github.com/PedroPerillo/dndice/internal/services/dice"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
)

var version = "dev"

func main() {
	issueSubject := flag.String("issue-token", "", "print a signed token for this user id and exit")
	issueEmail := flag.String("email", "", "email claim for -issue-token")
	issueTTL := flag.Duration("ttl", 24*time.Hour, "lifetime of the token printed by -issue-token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Setup(logger.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "dndice",
		Version:     version,
		Environment: cfg.Environment,
	})

	var verifier *auth.Verifier
	if cfg.AuthEnabled() {
		verifier, err = auth.New(&auth.Config{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
		})
		if err != nil {
			fatal(log, "failed to create token verifier", err)
		}
	}

	if *issueSubject != "" {
		if verifier == nil {
			fatal(log, "cannot issue token", errors.New("JWT_SECRET is not set"))
		}
		token, err := verifier.Issue(&models.Identity{ID: *issueSubject, Email: *issueEmail}, *issueTTL)
		if err != nil {
			fatal(log, "failed to issue token", err)
		}
		fmt.Println(token)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	store, err := bootstrap.OpenStore(ctx, cfg)
	cancel()
	if err != nil {
		fatal(log, "failed to open quick roll store", err)
	}
	defer store.Close()

	diceSvc, err := diceService.New(&diceService.Config{
		DiceRoller: dice.New(&dice.Config{}),
	})
	if err != nil {
		fatal(log, "failed to create dice service", err)
	}

	messagingSvc, err := messaging.NewService(&messaging.Config{})
	if err != nil {
		fatal(log, "failed to create messaging service", err)
	}

	quickRollSvc, err := quickRollService.New(&quickRollService.Config{
		Remote:     store.Repository,
		RemoteName: store.Name,
		Logger:     log,
	})
	if err != nil {
		fatal(log, "failed to create quick roll service", err)
	}

	server, err := api.New(&api.Config{
		Addr:             cfg.HTTPAddr,
		QuickRollService: quickRollSvc,
		DiceService:      diceSvc,
		Verifier:         verifier,
		Store:            store.Repository,
		Logger:           log,
		LocalStoreTTL:    cfg.LocalStoreTTL,
		CookieSecure:     cfg.CookieSecure,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
	})
	if err != nil {
		fatal(log, "failed to create http server", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr, "store", store.Name, "auth", verifier != nil)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var bot *discord.Bot
	if cfg.DiscordToken != "" {
		bot, err = discord.New(&discord.Config{
			Token:            cfg.DiscordToken,
			ApplicationID:    cfg.ApplicationID,
			GuildID:          cfg.GuildID,
			DiceService:      diceSvc,
			QuickRollService: quickRollSvc,
			MessagingService: messagingSvc,
			Logger:           log,
		})
		if err != nil {
			fatal(log, "failed to create discord bot", err)
		}

		if err := bot.Start(); err != nil {
			fatal(log, "failed to start discord bot", err)
		}
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sc:
		log.Info("shutting down", "signal", sig.String())
	case err := <-serverErr:
		log.Error("http server failed", "error", err)
	}

	if bot != nil {
		if err := bot.Stop(); err != nil {
			log.Error("failed to stop discord bot", "error", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("failed to stop http server", "error", err)
	}

	log.Info("dndice has been shut down")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err)
	os.Exit(1)
}
