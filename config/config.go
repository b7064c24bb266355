package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	golobby "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
	"github.com/joho/godotenv"

	"github.com/marcus-crane/cmuscord/shared"
)

type Config struct {
	Cmus     CmusConfig
	Cmuscord CmuscordConfig
	Discord  DiscordConfig
	Events   EventsConfig
}

type CmusConfig struct {
	RemotePath string `env:"CMUS_REMOTE_PATH"`
}

type CmuscordConfig struct {
	LogLevel     string `env:"LOG_LEVEL"`
	PollInterval int    `env:"POLL_INTERVAL"` // seconds
}

type DiscordConfig struct {
	ClientID string `env:"DISCORD_CLIENT_ID"`
}

type EventsConfig struct {
	Addr           string `env:"EVENTS_ADDR"`
	AllowedOrigins string `env:"EVENTS_ALLOWED_ORIGINS"`
}

// Default matches how things behave with nothing configured at all
func Default() Config {
	return Config{
		Cmus: CmusConfig{
			RemotePath: shared.CMUS_REMOTE_COMMAND,
		},
		Cmuscord: CmuscordConfig{
			LogLevel:     "info",
			PollInterval: 1,
		},
		Discord: DiscordConfig{
			ClientID: shared.DEFAULT_DISCORD_CLIENT_ID,
		},
	}
}

// Load reads an optional .env file followed by the environment. Anything
// left unset keeps its default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", slog.String("stack", err.Error()))
	}

	cfg := Default()
	if err := golobby.New().AddFeeder(feeder.Env{}).AddStruct(&cfg).Feed(); err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if _, err := strconv.ParseUint(c.Discord.ClientID, 10, 64); err != nil {
		return fmt.Errorf("DISCORD_CLIENT_ID must be a numeric application id, got %q", c.Discord.ClientID)
	}
	if c.Cmuscord.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be at least 1 second, got %d", c.Cmuscord.PollInterval)
	}
	return nil
}

func (c *Config) GetPollInterval() time.Duration {
	return time.Duration(c.Cmuscord.PollInterval) * time.Second
}

func (c *Config) GetAllowedOrigins() []string {
	origins := []string{}
	for _, origin := range strings.Split(c.Events.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func (c *Config) GetLogLevel() slog.Leveler {
	logLevel := strings.ToLower(c.Cmuscord.LogLevel)
	if logLevel == "error" {
		return slog.LevelError
	}
	if logLevel == "warning" {
		return slog.LevelWarn
	}
	if logLevel == "info" {
		return slog.LevelInfo
	}
	if logLevel == "debug" {
		return slog.LevelDebug
	}
	// default to info if unknown
	slog.With(slog.String("log_level", logLevel)).Info("Received invalid log level. Defaulting to INFO.")
	return slog.LevelInfo
}
