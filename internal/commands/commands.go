package commands

import "github.com/bwmarrin/discordgo"

var (
	permBanMembers      int64 = discordgo.PermissionBanMembers
	permModerateMembers int64 = discordgo.PermissionModerateMembers
	permManageGuild     int64 = discordgo.PermissionManageServer
	permSendMessages    int64 = discordgo.PermissionSendMessages
)

var deleteMessagesChoices = []*discordgo.ApplicationCommandOptionChoice{
	{Name: "Don't delete any", Value: 0},
	{Name: "Previous 24 hours", Value: 1},
	{Name: "Previous 7 days", Value: 7},
}

// GetAllCommands returns all application commands
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "ban",
			Description:              "Ban a user",
			DefaultMemberPermissions: &permBanMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "The user you want to ban",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "messages",
					Description: "How much of their recent message history to delete",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
					Choices:     deleteMessagesChoices,
				},
				{
					Name:        "reason",
					Description: "The reason for banning them, if any",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:                     "kick",
			Description:              "Kick a user",
			DefaultMemberPermissions: &permBanMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "The user you want to kick",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "The reason for kicking them, if any",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:                     "strike",
			Description:              "Give a member a strike",
			DefaultMemberPermissions: &permModerateMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "The member you want to strike",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "The reason for the strike",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:                     "unban",
			Description:              "Lift a user's ban",
			DefaultMemberPermissions: &permBanMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "The user you want to unban",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "reason",
					Description: "The reason for unbanning them",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:                     "megaban",
			Description:              "Ban all members that recently joined the server with new accounts",
			DefaultMemberPermissions: &permBanMembers,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "joined",
					Description: "Include members who joined the server this long ago",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "5 minutes ago", Value: "5 mins"},
						{Name: "15 minutes ago", Value: "15 mins"},
						{Name: "30 minutes ago", Value: "30 mins"},
						{Name: "1 hour ago", Value: "1 hour"},
					},
				},
				{
					Name:        "created",
					Description: "Include accounts created this long ago",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "1 hour ago", Value: "1 hour"},
						{Name: "1 day ago", Value: "1 day"},
						{Name: "1 week ago", Value: "1 week"},
						{Name: "1 month ago", Value: "1 month"},
					},
				},
				{
					Name:        "messages",
					Description: "How much of their recent message history to delete",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
					Choices:     deleteMessagesChoices,
				},
				{
					Name:        "reason",
					Description: "The reason for banning them",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:                     "version",
			Description:              "Check which version of the bot is running",
			DefaultMemberPermissions: &permManageGuild,
		},
		{
			Name:                     "status",
			Description:              "Show bot health and system statistics",
			DefaultMemberPermissions: &permManageGuild,
		},
		{
			Name:                     "Report Message",
			Type:                     discordgo.MessageApplicationCommand,
			DefaultMemberPermissions: &permSendMessages,
		},
	}
}
