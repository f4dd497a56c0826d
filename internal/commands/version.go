package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/carlmjohnson/versioninfo"
)

func (h *Handler) handleVersion(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return respondEphemeral(s, i, fmt.Sprintf("Current version is `%s`", versioninfo.Short()))
}
