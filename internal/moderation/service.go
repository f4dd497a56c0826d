// Package moderation implements the single-target moderation flows. One
// rule spans every removal path: the best-effort notification is always
// attempted before the ban or kick, because a removed member can no
// longer receive direct messages.
package moderation

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/logging"
	"github.com/unreal-slackers/quinn/internal/notify"
	"github.com/unreal-slackers/quinn/internal/store"
)

// ErrNotEligible means the bot cannot act on the target (role hierarchy
// or guild ownership). Nothing is mutated when it is returned.
var ErrNotEligible = errors.New("target is not eligible for this action")

// Platform is the slice of the session the service needs.
type Platform interface {
	GuildName() string
	GuildIconURL() string
	CanModerate(target *discordgo.Member) (bool, error)
	Ban(userID string, deleteDays int, reason string) error
	Kick(userID, reason string) error
	Unban(userID string) error
	PostEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error)
	MessageLink(channelID, messageID string) string
}

// Notifier delivers best-effort notices.
type Notifier interface {
	SendBestEffort(memberID string, embed *discordgo.MessageEmbed) bool
}

// Ledger is the slice of the store the service needs.
type Ledger interface {
	CreateCase(data store.CaseData) (*store.Case, error)
	UpdateCaseReference(caseID, url string) error
	DeactivateMemberStrikes(memberID string) (int64, error)
	CountActiveStrikes(memberID string) (int64, error)
}

// Actor identifies the moderator issuing an action.
type Actor struct {
	ID   string
	Name string
}

// Result reports one completed action back to the command layer.
type Result struct {
	Case     *store.Case
	Notified bool
}

type Service struct {
	ledger     Ledger
	platform   Platform
	notify     Notifier
	logChannel string
	appealLink string
	strikeTTL  time.Duration
}

func NewService(ledger Ledger, platform Platform, notifier Notifier, logChannel, appealLink string, strikeTTL time.Duration) *Service {
	return &Service{
		ledger:     ledger,
		platform:   platform,
		notify:     notifier,
		logChannel: logChannel,
		appealLink: appealLink,
		strikeTTL:  strikeTTL,
	}
}

func (s *Service) guildInfo() notify.GuildInfo {
	return notify.GuildInfo{Name: s.platform.GuildName(), IconURL: s.platform.GuildIconURL()}
}

// Ban notifies, bans, records the case, wipes the member's active
// strikes and posts the log entry. Store mutations happen only after the
// ban succeeds so a failed API call leaves no record behind.
func (s *Service) Ban(target *discordgo.Member, deleteDays int, reason string, mod Actor) (*Result, error) {
	eligible, err := s.platform.CanModerate(target)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	notified := s.notify.SendBestEffort(target.User.ID, notify.BanNotice(s.guildInfo(), reason, s.appealLink))

	if err := s.platform.Ban(target.User.ID, deleteDays, reason); err != nil {
		return nil, err
	}

	c, err := s.recordRemoval(store.ActionBanned, target, reason, mod)
	if err != nil {
		return nil, err
	}

	s.postLog("⛔ Banned", c, avatarURL(target))
	return &Result{Case: c, Notified: notified}, nil
}

// Kick follows the same shape as Ban without message deletion.
func (s *Service) Kick(target *discordgo.Member, reason string, mod Actor) (*Result, error) {
	eligible, err := s.platform.CanModerate(target)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	notified := s.notify.SendBestEffort(target.User.ID, notify.KickNotice(s.guildInfo(), reason))

	if err := s.platform.Kick(target.User.ID, reason); err != nil {
		return nil, err
	}

	c, err := s.recordRemoval(store.ActionKicked, target, reason, mod)
	if err != nil {
		return nil, err
	}

	s.postLog("🥾 Kicked", c, avatarURL(target))
	return &Result{Case: c, Notified: notified}, nil
}

// recordRemoval opens the case and applies the clean slate: removal
// deactivates every active strike the member has, keyed by member id.
func (s *Service) recordRemoval(action store.Action, target *discordgo.Member, reason string, mod Actor) (*store.Case, error) {
	c, err := s.ledger.CreateCase(store.CaseData{
		Action:      action,
		Member:      displayName(target),
		MemberID:    target.User.ID,
		Moderator:   mod.Name,
		ModeratorID: mod.ID,
		Reason:      reason,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.ledger.DeactivateMemberStrikes(target.User.ID); err != nil {
		logging.Error("Failed to clear strikes for %s: %v", target.User.ID, err)
	}

	return c, nil
}

// Strike records a new strike case, the strike itself, and notifies the
// member of their new total.
func (s *Service) Strike(target *discordgo.Member, reason string, mod Actor) (*Result, error) {
	c, err := s.ledger.CreateCase(store.CaseData{
		Action:      store.ActionStrikeAdded,
		Member:      displayName(target),
		MemberID:    target.User.ID,
		Moderator:   mod.Name,
		ModeratorID: mod.ID,
		Reason:      reason,
		Expiration:  time.Now().UTC().Add(s.strikeTTL),
	})
	if err != nil {
		return nil, err
	}

	active, err := s.ledger.CountActiveStrikes(target.User.ID)
	if err != nil {
		logging.Error("Failed to count strikes for %s: %v", target.User.ID, err)
	}

	notified := s.notify.SendBestEffort(target.User.ID, notify.StrikeNotice(s.guildInfo(), reason, active))

	s.postLog("⚠️ Strike Added", c, avatarURL(target))
	return &Result{Case: c, Notified: notified}, nil
}

// Unban lifts a ban and records the case. The target is no longer a
// member, so there is nobody to notify.
func (s *Service) Unban(user *discordgo.User, reason string, mod Actor) (*Result, error) {
	if err := s.platform.Unban(user.ID); err != nil {
		return nil, err
	}

	c, err := s.ledger.CreateCase(store.CaseData{
		Action:      store.ActionUnbanned,
		Member:      user.Username,
		MemberID:    user.ID,
		Moderator:   mod.Name,
		ModeratorID: mod.ID,
		Reason:      reason,
	})
	if err != nil {
		return nil, err
	}

	s.postLog("🔓 Unbanned", c, user.AvatarURL(""))
	return &Result{Case: c}, nil
}

// postLog announces the case in the moderation log channel and patches
// the case reference with the posted entry's URL. A log failure never
// fails the action itself.
func (s *Service) postLog(title string, c *store.Case, thumbnail string) {
	embed := caseLogEmbed(title, c, thumbnail)

	msg, err := s.platform.PostEmbed(s.logChannel, embed)
	if err != nil {
		logging.Error("Failed to post moderation log for case %s: %v", c.ID, err)
		return
	}

	url := s.platform.MessageLink(s.logChannel, msg.ID)
	if err := s.ledger.UpdateCaseReference(c.ID, url); err != nil {
		logging.Error("Failed to patch reference for case %s: %v", c.ID, err)
	}
}

func displayName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		return m.User.Username
	}
	return ""
}

func avatarURL(m *discordgo.Member) string {
	if m.User != nil {
		return m.User.AvatarURL("")
	}
	return ""
}

func caseLogEmbed(title string, c *store.Case, thumbnail string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: title},
		Description: fmt.Sprintf("**Member:** %s\n**Member ID:** %s\n**Reason:** %s",
			c.Member, c.MemberID, c.Reason),
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Case %s • %s", c.ID, c.Moderator)},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnail}
	}
	return embed
}
