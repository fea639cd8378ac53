package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends
const (
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config holds the application configuration
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	StoreBackend  string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL   string `env:"DATABASE_URL"`

	// JWTSecret enables bearer-token sign-in; without it every caller is anonymous
	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"dndice"`

	DiscordToken  string `env:"DISCORD_TOKEN"`
	ApplicationID string `env:"APPLICATION_ID"`
	GuildID       string `env:"GUILD_ID"`

	RollDisplayDelay time.Duration `env:"ROLL_DISPLAY_DELAY" envDefault:"500ms"`
	LocalStoreTTL    time.Duration `env:"LOCAL_STORE_TTL" envDefault:"8760h"`
	RateLimitRPS     float64       `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst   int           `env:"RATE_LIMIT_BURST" envDefault:"40"`
	CookieSecure     bool          `env:"COOKIE_SECURE" envDefault:"false"`

	// Home holds the terminal client's anonymous presets
	Home string `env:"DNDICE_HOME"`
}

// Load reads an optional .env file and then the environment
func Load() (*Config, error) {
	// Missing .env is fine, real environment variables still apply
	_ = godotenv.Load()

	return Parse()
}

// Parse reads the environment into a validated Config
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that env tags cannot express
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR must be set when STORE_BACKEND=redis")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when STORE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	if c.RollDisplayDelay < 0 {
		return fmt.Errorf("ROLL_DISPLAY_DELAY cannot be negative")
	}

	if c.LocalStoreTTL <= 0 {
		return fmt.Errorf("LOCAL_STORE_TTL must be positive")
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// AuthEnabled reports whether bearer tokens are accepted
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// PresetFile is where the terminal client keeps anonymous presets
func (c *Config) PresetFile() (string, error) {
	home := c.Home
	if home == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to find config directory: %w", err)
		}
		home = filepath.Join(dir, "dndice")
	}
	return filepath.Join(home, "quickrolls.json"), nil
}
