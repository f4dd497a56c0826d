package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/unreal-slackers/quinn/internal/logging"
	"github.com/unreal-slackers/quinn/internal/massban"
	"github.com/unreal-slackers/quinn/internal/platform"
	"github.com/unreal-slackers/quinn/pkg/duration"
)

const (
	megabanConfirmPrefix = "megaban_confirm:"
	megabanCancelPrefix  = "megaban_cancel:"
	confirmationWindow   = time.Minute
)

// handleMegaBan runs the selection phase and hands the matched set to a
// confirmation gate. Unexpected selection failures are logged and the
// operator gets a generic reply.
func (h *Handler) handleMegaBan(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := optionMap(i)

	joinedWithin, err := duration.Resolve(opts["joined"].StringValue())
	if err != nil {
		return err
	}
	createdWithin, err := duration.Resolve(opts["created"].StringValue())
	if err != nil {
		return err
	}

	actor := actorFrom(i)
	run := massban.NewRun(massban.Params{
		JoinedWithin:  joinedWithin,
		CreatedWithin: createdWithin,
		JoinedLabel:   opts["joined"].StringValue(),
		CreatedLabel:  opts["created"].StringValue(),
		DeleteDays:    int(opts["messages"].IntValue()),
		Reason:        opts["reason"].StringValue(),
		Moderator:     actor.Name,
		ModeratorID:   actor.ID,
	})

	if err := deferEphemeral(s, i); err != nil {
		return err
	}

	roster, err := h.fetchCandidates()
	if err != nil {
		return err
	}

	if run.Select(roster, time.Now()) == massban.PhaseNoMatches {
		_, err := followUp(s, i, "No matches found. You may need to adjust the parameters and try again.")
		return err
	}

	runID := uuid.NewString()
	gate := massban.NewGate(confirmationWindow)
	h.addGate(runID, gate)

	prompt, err := h.postConfirmationPrompt(s, i, run, runID)
	if err != nil {
		h.removeGate(runID)
		return err
	}

	go h.awaitDecision(s, i, run, gate, runID, prompt.ID)
	return nil
}

// fetchCandidates pulls the full roster over REST so the selection sees
// members who joined seconds ago. Account creation time comes from the
// user id snowflake.
func (h *Handler) fetchCandidates() ([]massban.Candidate, error) {
	members, err := h.session.Members()
	if err != nil {
		return nil, err
	}

	candidates := make([]massban.Candidate, 0, len(members))
	for _, m := range members {
		if m.User == nil {
			continue
		}
		created, err := discordgo.SnowflakeTimestamp(m.User.ID)
		if err != nil {
			continue
		}
		candidates = append(candidates, massban.Candidate{
			ID:        m.User.ID,
			JoinedAt:  m.JoinedAt,
			CreatedAt: created,
		})
	}
	return candidates, nil
}

func (h *Handler) postConfirmationPrompt(s *discordgo.Session, i *discordgo.InteractionCreate, run *massban.Run, runID string) (*discordgo.Message, error) {
	noun := "members"
	if len(run.Matches) == 1 {
		noun = "member"
	}

	content := fmt.Sprintf("Found %d %s who joined after <t:%d> with accounts created after <t:%d>:\n%s",
		len(run.Matches), noun,
		run.JoinedCutoff.Unix(), run.CreatedCutoff.Unix(),
		mentionList(candidateIDs(run.Matches)))

	return s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:    content,
		Flags:      discordgo.MessageFlagsEphemeral,
		Components: confirmationButtons(runID, len(run.Matches), false),
	})
}

func confirmationButtons(runID string, matches int, disabled bool) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: megabanCancelPrefix + runID,
					Disabled: disabled,
				},
				discordgo.Button{
					Label:    fmt.Sprintf("Ban %d Members", matches),
					Style:    discordgo.DangerButton,
					CustomID: megabanConfirmPrefix + runID,
					Disabled: disabled,
				},
			},
		},
	}
}

// resolveGate feeds a button press into the run's gate. Presses after
// the gate has resolved are acknowledged and ignored.
func (h *Handler) resolveGate(s *discordgo.Session, i *discordgo.InteractionCreate, runID string, confirm bool) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})

	gate := h.gate(runID)
	if gate == nil {
		return
	}

	if confirm {
		gate.Confirm()
	} else {
		gate.Cancel()
	}
}

// awaitDecision is the single consumer of the confirmation gate. It owns
// every edit to the prompt message, so each terminal path is handled in
// exactly one place.
func (h *Handler) awaitDecision(s *discordgo.Session, i *discordgo.InteractionCreate, run *massban.Run, gate *massban.Gate, runID, promptID string) {
	decision := gate.Wait()
	h.removeGate(runID)

	switch run.Resolve(decision) {
	case massban.PhaseCancelled:
		content := "MegaBan cancelled."
		h.editPrompt(s, i, promptID, &content, []discordgo.MessageComponent{})

	case massban.PhaseExpired:
		// Leave the prompt text, disable the controls
		h.editPrompt(s, i, promptID, nil, confirmationButtons(runID, len(run.Matches), true))

	case massban.PhaseExecuting:
		content := fmt.Sprintf("Banning %d accounts...", len(run.Matches))
		h.editPrompt(s, i, promptID, &content, []discordgo.MessageComponent{})
		h.executeMegaBan(s, i, run)
	}
}

func (h *Handler) editPrompt(s *discordgo.Session, i *discordgo.InteractionCreate, promptID string, content *string, components []discordgo.MessageComponent) {
	edit := &discordgo.WebhookEdit{Components: &components}
	if content != nil {
		edit.Content = content
	}
	if _, err := s.FollowupMessageEdit(i.Interaction, promptID, edit); err != nil {
		logging.Warn("Failed to edit megaban prompt: %v", err)
	}
}

// executeMegaBan runs the sequential ban loop, reports the aggregate
// outcome to the operator, and posts one log entry for the whole run.
func (h *Handler) executeMegaBan(s *discordgo.Session, i *discordgo.InteractionCreate, run *massban.Run) {
	outcome := run.Execute(&sessionBanner{session: h.session}, h.store)
	logging.Info("MegaBan by %s: %d banned, %d failed",
		run.Params.ModeratorID, len(outcome.Banned), len(outcome.Failed))

	if _, err := followUp(s, i, megabanReport(outcome, len(run.Matches))); err != nil {
		logging.Warn("Failed to report megaban outcome: %v", err)
	}

	logEntry := &discordgo.MessageEmbed{
		Author: &discordgo.MessageEmbedAuthor{Name: "☢️ MegaBan"},
		Description: fmt.Sprintf("**Accounts Banned:** %d\n**Criteria:** Created up to %s ago • joined server up to %s ago\n**Reason:** %s",
			len(outcome.Banned), run.Params.CreatedLabel, run.Params.JoinedLabel, run.Params.Reason),
		Footer:    &discordgo.MessageEmbedFooter{Text: run.Params.Moderator},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if _, err := h.session.PostEmbed(h.cfg.Channels.ModerationLog, logEntry); err != nil {
		logging.Error("Failed to post megaban log entry: %v", err)
	}
}

// megabanReport summarizes the run for the operator. Both mention lists
// are always included, even when one of them is empty.
func megabanReport(outcome massban.Outcome, total int) string {
	return fmt.Sprintf("Successfully banned %d of %d accounts.\n\n**Successful Bans**\n%s\n\n**Failed Bans**\n%s",
		len(outcome.Banned), total,
		mentionList(outcome.Banned), mentionList(outcome.Failed))
}

// sessionBanner adapts the platform session to the executor interface.
// The eligibility check resolves the member fresh; anyone who already
// left counts as ineligible.
type sessionBanner struct {
	session *platform.Session
}

func (b *sessionBanner) CanBan(memberID string) bool {
	m, err := b.session.Member(memberID)
	if err != nil {
		return false
	}
	ok, err := b.session.CanModerate(m)
	return err == nil && ok
}

func (b *sessionBanner) Ban(memberID string, deleteDays int, reason string) error {
	return b.session.Ban(memberID, deleteDays, reason)
}

func candidateIDs(candidates []massban.Candidate) []string {
	ids := make([]string, len(candidates))
	for n, c := range candidates {
		ids[n] = c.ID
	}
	return ids
}

func mentionList(ids []string) string {
	mentions := make([]string, len(ids))
	for n, id := range ids {
		mentions[n] = "<@" + id + ">"
	}
	return strings.Join(mentions, " ")
}
