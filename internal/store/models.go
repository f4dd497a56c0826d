package store

import (
	"fmt"
	"time"
)

// Action is the closed set of moderation actions a case can record.
type Action string

const (
	ActionBanned      Action = "Banned"
	ActionKicked      Action = "Kicked"
	ActionStrikeAdded Action = "Strike added"
	ActionUnbanned    Action = "Unbanned"
)

// Valid reports whether the action is a known variant. Unknown variants
// are rejected when a case is created, not when it is read back.
func (a Action) Valid() bool {
	switch a {
	case ActionBanned, ActionKicked, ActionStrikeAdded, ActionUnbanned:
		return true
	}
	return false
}

// Case is one immutable record of a moderation action. Only Reference is
// ever patched, once, after the action is announced in the log channel.
type Case struct {
	ID          string `gorm:"primaryKey"`
	Action      Action `gorm:"index"`
	Member      string
	MemberID    string `gorm:"index"`
	Moderator   string
	ModeratorID string
	Reason      string
	Reference   *string
	CreatedAt   time.Time
}

// Strike is an active disciplinary mark. CaseID is a non-owning lookup
// key back to the case that created it; MemberID is the key every
// deactivation path uses.
type Strike struct {
	ID         string `gorm:"primaryKey"`
	CaseID     string `gorm:"index"`
	MemberID   string `gorm:"index"`
	IsActive   bool   `gorm:"index"`
	Expiration time.Time
}

// CaseData carries the fields a caller supplies when opening a case.
// Expiration is required when Action is ActionStrikeAdded and ignored
// otherwise.
type CaseData struct {
	Action      Action
	Member      string
	MemberID    string
	Moderator   string
	ModeratorID string
	Reason      string
	Expiration  time.Time
}

func (d CaseData) validate() error {
	if !d.Action.Valid() {
		return fmt.Errorf("unknown action %q", d.Action)
	}
	if d.MemberID == "" {
		return fmt.Errorf("member id is required")
	}
	if d.Action == ActionStrikeAdded && d.Expiration.IsZero() {
		return fmt.Errorf("strike cases require an expiration")
	}
	return nil
}
