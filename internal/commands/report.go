package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/logging"
)

const reportModalPrefix = "report_message:"

// handleReportMessage opens the reason form for a reported message. The
// reported message's location rides along in the modal's custom id.
func (h *Handler) handleReportMessage(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()

	message, ok := data.Resolved.Messages[data.TargetID]
	if !ok {
		return respondEphemeral(s, i, "That message could not be resolved.")
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: fmt.Sprintf("%s%s:%s", reportModalPrefix, message.ChannelID, message.ID),
			Title:    "Report Message",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID: "reason",
							Label:    "Reason for reporting this message",
							Style:    discordgo.TextInputParagraph,
							Required: true,
						},
					},
				},
			},
		},
	})
}

// handleReportSubmit posts the report to the user-reports channel,
// pinging the moderator role.
func (h *Handler) handleReportSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()

	parts := strings.Split(strings.TrimPrefix(data.CustomID, reportModalPrefix), ":")
	if len(parts) != 2 {
		return fmt.Errorf("malformed report modal id: %s", data.CustomID)
	}
	channelID, messageID := parts[0], parts[1]

	reason := modalInputValue(data, "reason")
	reporter := actorFrom(i)

	message, err := s.ChannelMessage(channelID, messageID)
	if err != nil {
		return fmt.Errorf("failed to load reported message: %w", err)
	}

	author := "unknown"
	authorID := "unknown"
	if message.Author != nil {
		author = message.Author.Username
		authorID = message.Author.ID
	}

	entry := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: "⚠️ Reported Message"},
		Description: fmt.Sprintf("**Author:** %s\n**Author ID:** %s\n**Content:** %s\n[Jump to Message](%s)",
			author, authorID, message.Content, h.session.MessageLink(channelID, messageID)),
	}

	content := fmt.Sprintf("<@&%s> → **<@%s> reported a message in <#%s>.**\nReason: %s",
		h.cfg.Moderation.ModeratorRole, reporter.ID, channelID, reason)

	if _, err := h.session.PostMessage(h.cfg.Channels.UserReports, &discordgo.MessageSend{
		Content: content,
		Embeds:  []*discordgo.MessageEmbed{entry},
	}); err != nil {
		return err
	}

	logging.Info("Message reported in channel %s by %s", channelID, reporter.ID)

	return respondEphemeral(s, i, "Thank you for submitting your report. A moderator will review it as soon as possible.")
}

func modalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
