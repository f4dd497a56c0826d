package platform

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ErrNotBanned reports that the target has no ban to lift.
var ErrNotBanned = errors.New("user is not banned")

// Ban removes the member and deletes their recent message history going
// back deleteDays days.
func (s *Session) Ban(userID string, deleteDays int, reason string) error {
	if err := s.discord.GuildBanCreateWithReason(s.guildID, userID, reason, deleteDays); err != nil {
		return fmt.Errorf("failed to ban %s: %w", userID, err)
	}
	return nil
}

// Kick removes the member without a ban.
func (s *Session) Kick(userID, reason string) error {
	if err := s.discord.GuildMemberDeleteWithReason(s.guildID, userID, reason); err != nil {
		return fmt.Errorf("failed to kick %s: %w", userID, err)
	}
	return nil
}

// Unban lifts an existing ban. A target without one yields ErrNotBanned
// so callers can tell operator mistakes from real failures.
func (s *Session) Unban(userID string) error {
	if err := mapUnknownBan(s.discord.GuildBanDelete(s.guildID, userID)); err != nil {
		if errors.Is(err, ErrNotBanned) {
			return err
		}
		return fmt.Errorf("failed to unban %s: %w", userID, err)
	}
	return nil
}

func mapUnknownBan(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownBan {
		return ErrNotBanned
	}
	return err
}

// SendDM delivers an embed to the user's direct message channel. Callers
// that only care about best-effort delivery go through notify.Dispatcher.
func (s *Session) SendDM(userID string, embed *discordgo.MessageEmbed) error {
	channel, err := s.discord.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}
	if _, err := s.discord.ChannelMessageSendEmbed(channel.ID, embed); err != nil {
		return fmt.Errorf("failed to send DM: %w", err)
	}
	return nil
}

// PostEmbed posts an embed to a guild channel and returns the message.
func (s *Session) PostEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	msg, err := s.discord.ChannelMessageSendEmbed(channelID, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to post to channel %s: %w", channelID, err)
	}
	return msg, nil
}

// PostMessage posts content plus embeds to a guild channel.
func (s *Session) PostMessage(channelID string, send *discordgo.MessageSend) (*discordgo.Message, error) {
	msg, err := s.discord.ChannelMessageSendComplex(channelID, send)
	if err != nil {
		return nil, fmt.Errorf("failed to post to channel %s: %w", channelID, err)
	}
	return msg, nil
}

// MessageLink builds the canonical jump URL for a posted message.
func (s *Session) MessageLink(channelID, messageID string) string {
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", s.guildID, channelID, messageID)
}
