package platform

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Member fetches a single guild member. Missing members return an error;
// callers treat that as "no longer present".
func (s *Session) Member(userID string) (*discordgo.Member, error) {
	m, err := s.discord.GuildMember(s.guildID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member %s: %w", userID, err)
	}
	return m, nil
}

// Members fetches the full guild roster over REST, page by page, so the
// result reflects the current membership rather than gateway cache.
func (s *Session) Members() ([]*discordgo.Member, error) {
	var all []*discordgo.Member
	after := ""

	for {
		page, err := s.discord.GuildMembers(s.guildID, after, 1000)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch members: %w", err)
		}
		all = append(all, page...)
		if len(page) < 1000 {
			return all, nil
		}
		after = page[len(page)-1].User.ID
	}
}

// CanModerate reports whether the bot itself is able to ban or kick the
// target: the guild owner is untouchable and the bot's highest role must
// sit above the target's highest role.
func (s *Session) CanModerate(target *discordgo.Member) (bool, error) {
	guild, err := s.discord.State.Guild(s.guildID)
	if err != nil {
		if guild, err = s.discord.Guild(s.guildID); err != nil {
			return false, fmt.Errorf("failed to resolve guild: %w", err)
		}
	}

	if target.User != nil && target.User.ID == guild.OwnerID {
		return false, nil
	}

	bot, err := s.Member(s.BotUserID())
	if err != nil {
		return false, err
	}

	return highestRolePosition(guild, bot) > highestRolePosition(guild, target), nil
}

func highestRolePosition(guild *discordgo.Guild, m *discordgo.Member) int {
	highest := -1
	for _, roleID := range m.Roles {
		for _, role := range guild.Roles {
			if role.ID == roleID && role.Position > highest {
				highest = role.Position
			}
		}
	}
	return highest
}
