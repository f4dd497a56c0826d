package commands

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/platform"
)

func (h *Handler) handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)
	user := opts["user"].UserValue(s)
	reason := opts["reason"].StringValue()

	if user == nil {
		return respondEphemeral(s, i, "That user could not be resolved.")
	}

	if err := deferEphemeral(s, i); err != nil {
		return err
	}

	result, err := h.mod.Unban(user, reason, actorFrom(i))
	if errors.Is(err, platform.ErrNotBanned) {
		_, err = followUp(s, i, "That user doesn't appear to be banned.")
		return err
	}
	if err != nil {
		return err
	}

	_, err = followUp(s, i, fmt.Sprintf("%s was unbanned.", result.Case.Member))
	return err
}
