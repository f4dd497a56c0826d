package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/moderation"
)

// handleBan bans a single member: notify first, then ban, then record.
func (h *Handler) handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	user := opts["user"].UserValue(s)
	deleteDays := int(opts["messages"].IntValue())
	reason := opts["reason"].StringValue()

	if msg := h.checkTarget(i, user); msg != "" {
		return respondEphemeral(s, i, msg)
	}

	target, err := h.session.Member(user.ID)
	if err != nil {
		return respondEphemeral(s, i, "That user is not in the server. If they still appear as an option, try refreshing your client.")
	}

	if err := deferEphemeral(s, i); err != nil {
		return err
	}

	result, err := h.mod.Ban(target, deleteDays, reason, actorFrom(i))
	if errors.Is(err, moderation.ErrNotEligible) {
		_, err = followUp(s, i, "I don't have permission to ban that member.")
		return err
	}
	if err != nil {
		return err
	}

	if _, err := followUp(s, i, fmt.Sprintf("%s was banned from the server.", result.Case.Member)); err != nil {
		return err
	}
	if !result.Notified {
		_, err = followUp(s, i, ":warning: The user wasn't notified because they're not accepting direct messages.")
		return err
	}
	return nil
}

// checkTarget covers the preconditions shared by ban, kick and strike:
// no self-targeting and no targeting the bot. Returns the reply to send,
// or "" when the target is fine.
func (h *Handler) checkTarget(i *discordgo.InteractionCreate, user *discordgo.User) string {
	if user == nil {
		return "That user could not be resolved."
	}
	if user.ID == h.session.BotUserID() {
		return "Nice try, human."
	}
	if i.Member != nil && i.Member.User != nil && user.ID == i.Member.User.ID {
		return "You can't do that to yourself."
	}
	return ""
}

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
