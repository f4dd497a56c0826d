// Package massban drives the interactive mass-ban workflow: select
// recently-joined members with new accounts, confirm with the invoking
// moderator, then ban the matched set one member at a time.
package massban

import (
	"time"
)

// Phase is the workflow state. Completed, Cancelled, Expired and
// NoMatches are terminal.
type Phase int

const (
	PhaseSelecting Phase = iota
	PhaseAwaitingConfirmation
	PhaseExecuting
	PhaseCompleted
	PhaseCancelled
	PhaseExpired
	PhaseNoMatches
)

func (p Phase) String() string {
	switch p {
	case PhaseSelecting:
		return "Selecting"
	case PhaseAwaitingConfirmation:
		return "AwaitingConfirmation"
	case PhaseExecuting:
		return "Executing"
	case PhaseCompleted:
		return "Completed"
	case PhaseCancelled:
		return "Cancelled"
	case PhaseExpired:
		return "Expired"
	case PhaseNoMatches:
		return "NoMatches"
	}
	return "Unknown"
}

// Params are the operator's inputs, resolved to durations at parse time.
type Params struct {
	JoinedWithin  time.Duration
	CreatedWithin time.Duration
	JoinedLabel   string
	CreatedLabel  string
	DeleteDays    int
	Reason        string
	Moderator     string
	ModeratorID   string
}

// Candidate is one roster member considered for the ban set.
type Candidate struct {
	ID        string
	JoinedAt  time.Time
	CreatedAt time.Time
}

// Run tracks a single invocation of the workflow.
type Run struct {
	Params  Params
	Phase   Phase
	Matches []Candidate

	JoinedCutoff  time.Time
	CreatedCutoff time.Time
}

func NewRun(params Params) *Run {
	return &Run{Params: params, Phase: PhaseSelecting}
}

// Select resolves the cutoffs against now and filters the roster down to
// members who both joined and were created after them. An empty result
// terminates the run as NoMatches.
func (r *Run) Select(roster []Candidate, now time.Time) Phase {
	r.JoinedCutoff = now.Add(-r.Params.JoinedWithin)
	r.CreatedCutoff = now.Add(-r.Params.CreatedWithin)

	r.Matches = nil
	for _, c := range roster {
		if c.JoinedAt.After(r.JoinedCutoff) && c.CreatedAt.After(r.CreatedCutoff) {
			r.Matches = append(r.Matches, c)
		}
	}

	if len(r.Matches) == 0 {
		r.Phase = PhaseNoMatches
	} else {
		r.Phase = PhaseAwaitingConfirmation
	}
	return r.Phase
}

// Resolve applies the confirmation gate's decision.
func (r *Run) Resolve(d Decision) Phase {
	switch d {
	case DecisionConfirm:
		r.Phase = PhaseExecuting
	case DecisionCancel:
		r.Phase = PhaseCancelled
	case DecisionTimeout:
		r.Phase = PhaseExpired
	}
	return r.Phase
}
