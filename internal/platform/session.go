// Package platform wraps the Discord session behind the handful of
// operations the moderation core needs. Components receive a *Session
// explicitly; nothing reads it from package state.
package platform

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/logging"
)

type Session struct {
	discord *discordgo.Session
	guildID string
}

// New creates the Discord session for the managed guild. The connection
// is not opened until Open is called.
func New(token, guildID string) (*Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages

	dg.AddHandler(func(_ *discordgo.Session, _ *discordgo.Disconnect) {
		logging.Warn("Gateway connection lost, reconnecting")
	})
	dg.AddHandler(func(_ *discordgo.Session, _ *discordgo.Resumed) {
		logging.Info("Gateway connection resumed")
	})

	return &Session{discord: dg, guildID: guildID}, nil
}

// Open connects to the gateway.
func (s *Session) Open() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		logging.Info("Connected as %s (%s)", s.discord.State.User.Username, s.discord.State.User.ID)
	}
	return nil
}

func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// GuildID returns the managed guild's id.
func (s *Session) GuildID() string {
	return s.guildID
}

// BotUserID returns the bot's own user id, or "" before Open.
func (s *Session) BotUserID() string {
	if s.discord.State.User == nil {
		return ""
	}
	return s.discord.State.User.ID
}

// GuildName resolves the managed guild's name, falling back to the id.
func (s *Session) GuildName() string {
	if g, err := s.discord.State.Guild(s.guildID); err == nil {
		return g.Name
	}
	if g, err := s.discord.Guild(s.guildID); err == nil {
		return g.Name
	}
	return s.guildID
}

// GuildIconURL resolves the managed guild's icon, or "" when unset.
func (s *Session) GuildIconURL() string {
	g, err := s.discord.State.Guild(s.guildID)
	if err != nil {
		if g, err = s.discord.Guild(s.guildID); err != nil {
			return ""
		}
	}
	return g.IconURL("")
}

// RegisterCommands overwrites the guild's application commands in one
// call so removed commands disappear on restart.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	appID := s.discord.State.User.ID
	registered, err := s.discord.ApplicationCommandBulkOverwrite(appID, s.guildID, commands)
	if err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}
	logging.Info("Registered %d application commands", len(registered))
	return nil
}

// AddHandler adds an event handler to the underlying session.
func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}
