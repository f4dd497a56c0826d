package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

func (h *Handler) handleStrike(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	user := opts["user"].UserValue(s)
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

	result, err := h.mod.Strike(target, reason, actorFrom(i))
	if err != nil {
		return err
	}

	if _, err := followUp(s, i, fmt.Sprintf("%s received a strike.", result.Case.Member)); err != nil {
		return err
	}
	if !result.Notified {
		_, err = followUp(s, i, ":warning: The user wasn't notified because they're not accepting direct messages.")
		return err
	}
	return nil
}
