package massban

import (
	"github.com/unreal-slackers/quinn/internal/logging"
)

// Banner performs the irreversible platform action for one member.
type Banner interface {
	CanBan(memberID string) bool
	Ban(memberID string, deleteDays int, reason string) error
}

// StrikeSlate wipes a member's active strikes after their removal.
type StrikeSlate interface {
	DeactivateMemberStrikes(memberID string) (int64, error)
}

// Outcome is the aggregate accounting of one executed run.
type Outcome struct {
	Banned []string
	Failed []string
}

// Execute bans the matched set strictly in sequence. The per-member
// strike wipe is a read-then-write keyed by member id, and running
// members in parallel could misattribute it, so this stays serial. A
// single member's failure is recorded and the batch moves on.
func (r *Run) Execute(banner Banner, slate StrikeSlate) Outcome {
	var out Outcome

	for _, target := range r.Matches {
		if !banner.CanBan(target.ID) {
			out.Failed = append(out.Failed, target.ID)
			continue
		}

		if err := banner.Ban(target.ID, r.Params.DeleteDays, r.Params.Reason); err != nil {
			logging.Error("Mass ban: failed to ban %s: %v", target.ID, err)
			out.Failed = append(out.Failed, target.ID)
			continue
		}

		if _, err := slate.DeactivateMemberStrikes(target.ID); err != nil {
			// The ban already happened; the member still counts as
			// banned, the strike wipe failure is only logged.
			logging.Error("Mass ban: failed to clear strikes for %s: %v", target.ID, err)
		}

		out.Banned = append(out.Banned, target.ID)
	}

	r.Phase = PhaseCompleted
	return out
}
