// Package notify handles best-effort direct messages to members. A
// failed delivery is informational, never an error for the caller.
package notify

import (
	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/logging"
)

// DMSender is the slice of the platform session the dispatcher needs.
type DMSender interface {
	SendDM(userID string, embed *discordgo.MessageEmbed) error
}

type Dispatcher struct {
	sender DMSender
}

func NewDispatcher(sender DMSender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// SendBestEffort attempts delivery and reports whether it succeeded.
// Recipients with closed DMs simply come back false.
func (d *Dispatcher) SendBestEffort(memberID string, embed *discordgo.MessageEmbed) bool {
	if err := d.sender.SendDM(memberID, embed); err != nil {
		logging.Warn("Could not notify member %s: %v", memberID, err)
		return false
	}
	return true
}
