package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/moderation"
)

func (h *Handler) handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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

	result, err := h.mod.Kick(target, reason, actorFrom(i))
	if errors.Is(err, moderation.ErrNotEligible) {
		_, err = followUp(s, i, "I don't have permission to kick that member.")
		return err
	}
	if err != nil {
		return err
	}

	if _, err := followUp(s, i, fmt.Sprintf("%s was kicked from the server.", result.Case.Member)); err != nil {
		return err
	}
	if !result.Notified {
		_, err = followUp(s, i, ":warning: The user wasn't notified because they're not accepting direct messages.")
		return err
	}
	return nil
}
