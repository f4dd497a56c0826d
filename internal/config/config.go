package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds every value the bot reads at startup. Values are constant
// for the process lifetime.
type Config struct {
	Bot        BotConfig        `json:"bot"`
	Channels   ChannelConfig    `json:"channels"`
	Moderation ModerationConfig `json:"moderation"`
	Database   DatabaseConfig   `json:"database"`
	Logging    LoggingConfig    `json:"logging"`
}

type BotConfig struct {
	Token   string `json:"token"`
	GuildID string `json:"guild_id"`
}

type ChannelConfig struct {
	ModerationLog string `json:"moderation_log"`
	UserReports   string `json:"user_reports"`
}

type ModerationConfig struct {
	ModeratorRole      string `json:"moderator_role"`
	BanAppealLink      string `json:"ban_appeal_link"`
	StrikeLifetimeDays int    `json:"strike_lifetime_days"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type LoggingConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

// Load reads the config file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)

	if cfg.Bot.Token == "" {
		return nil, fmt.Errorf("bot token not configured")
	}
	if cfg.Bot.GuildID == "" {
		return nil, fmt.Errorf("guild id not configured")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		"DISCORD_TOKEN":          &cfg.Bot.Token,
		"GUILD":                  &cfg.Bot.GuildID,
		"MODERATION_LOG_CHANNEL": &cfg.Channels.ModerationLog,
		"USER_REPORTS_CHANNEL":   &cfg.Channels.UserReports,
		"MODERATOR_ROLE":         &cfg.Moderation.ModeratorRole,
		"BAN_APPEAL_LINK":        &cfg.Moderation.BanAppealLink,
		"DATABASE_PATH":          &cfg.Database.Path,
	}

	for key, field := range overrides {
		if v := os.Getenv(key); v != "" {
			*field = v
		}
	}
}

// Default returns the config used when no file is present. Token and
// guild id have no defaults and must come from the file or environment.
func Default() *Config {
	return &Config{
		Moderation: ModerationConfig{
			StrikeLifetimeDays: 90,
		},
		Database: DatabaseConfig{
			Path: "quinn.db",
		},
		Logging: LoggingConfig{
			Path:  "quinn.log",
			Level: "info",
		},
	}
}
