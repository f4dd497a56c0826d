package commands

import (
	"github.com/bwmarrin/discordgo"
)

// All command replies are ephemeral: moderation chatter stays between
// the bot and the invoking moderator.

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) (*discordgo.Message, error) {
	return s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
}

// respondGenericError tells the operator something went wrong without
// surfacing internal detail. The detail goes to the log.
func respondGenericError(s *discordgo.Session, i *discordgo.InteractionCreate) {
	content := "Something went wrong while handling that. The error has been logged."
	if err := respondEphemeral(s, i, content); err != nil {
		// Already responded; fall back to a follow-up
		followUp(s, i, content)
	}
}
