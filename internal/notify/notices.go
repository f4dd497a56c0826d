package notify

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// GuildInfo names the guild a notice comes from.
type GuildInfo struct {
	Name    string
	IconURL string
}

func base(guild GuildInfo, title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Author:      &discordgo.MessageEmbedAuthor{Name: guild.Name, IconURL: guild.IconURL},
		Title:       title,
		Description: description,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// BanNotice tells a member they are about to be banned and how to appeal.
func BanNotice(guild GuildInfo, reason, appealLink string) *discordgo.MessageEmbed {
	description := fmt.Sprintf("**Reason:** %s", reason)
	if appealLink != "" {
		description += fmt.Sprintf("\n—\nYou may appeal the ban by filling out [this form](%s). Our staff will review your appeal and respond as soon as possible.", appealLink)
	}
	return base(guild, "Banned from the server", description)
}

// KickNotice tells a member they are about to be kicked.
func KickNotice(guild GuildInfo, reason string) *discordgo.MessageEmbed {
	return base(guild, "Kicked from the server", fmt.Sprintf("**Reason:** %s", reason))
}

// StrikeNotice tells a member they received a strike and their new total.
func StrikeNotice(guild GuildInfo, reason string, active int64) *discordgo.MessageEmbed {
	return base(guild, "You received a strike",
		fmt.Sprintf("**Reason:** %s\n**Active strikes:** %d", reason, active))
}

// ExpiryNotice tells a member one of their strikes expired.
func ExpiryNotice(guild GuildInfo, remaining int64) *discordgo.MessageEmbed {
	description := fmt.Sprintf("%d strikes remaining", remaining)
	switch remaining {
	case 0:
		description = "No strikes remaining."
	case 1:
		description = "1 strike remaining"
	}
	return base(guild, "One of your strikes expired", description)
}
