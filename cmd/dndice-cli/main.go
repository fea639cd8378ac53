package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/PedroPerillo/dndice/internal/auth"
	"github.com/PedroPerillo/dndice/internal/bootstrap"
	"github.com/PedroPerillo/dndice/internal/cli"
	"github.com/PedroPerillo/dndice/internal/config"
	"github.com/PedroPerillo/dndice/internal/dice"
	"github.com/PedroPerillo/dndice/internal/logger"
	quickRollRepo "github.com/PedroPerillo/dndice/internal/repositories/quick_roll"
	diceService "github.com/PedroPerillo/dndice/internal/services/dice"
	"github.com/PedroPerillo/dndice/internal/services/messaging"
	quickRollService "github.com/PedroPerillo/dndice/internal/services/quick_roll"
	"github.com/PedroPerillo/dndice/internal/services/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// The prompt owns stdout, keep logs quiet unless asked for
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = "warn"
	}
	log := logger.Setup(logger.Config{
		Level:       level,
		Format:      cfg.LogFormat,
		ServiceName: "dndice-cli",
		Environment: cfg.Environment,
	})

	path, err := cfg.PresetFile()
	if err != nil {
		log.Error("failed to locate preset file", "error", err)
		os.Exit(1)
	}

	storage, err := quickRollRepo.NewFileStorage(path, nil)
	if err != nil {
		log.Error("failed to open preset file", "path", path, "error", err)
		os.Exit(1)
	}

	local, err := quickRollRepo.NewLocal(&quickRollRepo.LocalConfig{
		Storage: storage,
		TTL:     cfg.LocalStoreTTL,
	})
	if err != nil {
		log.Error("failed to create local quick roll repository", "error", err)
		os.Exit(1)
	}

	// Signing in needs both a way to check tokens and somewhere shared to keep presets
	var verifier *auth.Verifier
	qrCfg := &quickRollService.Config{Logger: log}
	if cfg.AuthEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		store, err := bootstrap.OpenStore(ctx, cfg)
		cancel()
		if err != nil {
			log.Warn("shared quick rolls unavailable, login disabled", "error", err)
		} else {
			defer store.Close()
			qrCfg.Remote = store.Repository
			qrCfg.RemoteName = store.Name

			verifier, err = auth.New(&auth.Config{
				Secret: []byte(cfg.JWTSecret),
				Issuer: cfg.JWTIssuer,
			})
			if err != nil {
				log.Error("failed to create token verifier", "error", err)
				os.Exit(1)
			}
		}
	}

	quickRollSvc, err := quickRollService.New(qrCfg)
	if err != nil {
		log.Error("failed to create quick roll service", "error", err)
		os.Exit(1)
	}

	diceSvc, err := diceService.New(&diceService.Config{
		DiceRoller: dice.New(&dice.Config{}),
	})
	if err != nil {
		log.Error("failed to create dice service", "error", err)
		os.Exit(1)
	}

	messagingSvc, err := messaging.NewService(&messaging.Config{})
	if err != nil {
		log.Error("failed to create messaging service", "error", err)
		os.Exit(1)
	}

	client, err := cli.New(&cli.Config{
		In:               os.Stdin,
		Out:              os.Stdout,
		DiceService:      diceSvc,
		QuickRollService: quickRollSvc,
		MessagingService: messagingSvc,
		Local:            local,
		Gate:             session.NewStaticGate(nil),
		Verifier:         verifier,
		DisplayDelay:     cfg.RollDisplayDelay,
		Logger:           log,
	})
	if err != nil {
		log.Error("failed to start client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Run(context.Background()); err != nil {
		log.Error("client stopped", "error", err)
	}
}
