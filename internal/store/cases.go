package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCase persists a new case with a generated id. When the action is
// ActionStrikeAdded the linked strike is created in the same
// transaction, so a strike case never exists without its strike.
func (s *Store) CreateCase(data CaseData) (*Case, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}

	c := &Case{
		ID:          uuid.NewString(),
		Action:      data.Action,
		Member:      data.Member,
		MemberID:    data.MemberID,
		Moderator:   data.Moderator,
		ModeratorID: data.ModeratorID,
		Reason:      data.Reason,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if data.Action == ActionStrikeAdded {
			strike := &Strike{
				ID:         uuid.NewString(),
				CaseID:     c.ID,
				MemberID:   c.MemberID,
				IsActive:   true,
				Expiration: data.Expiration,
			}
			if err := tx.Create(strike).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create case: %w", err)
	}

	return c, nil
}

// FindCasesByMember returns the member's cases, optionally filtered to a
// set of actions.
func (s *Store) FindCasesByMember(memberID string, actions ...Action) ([]Case, error) {
	q := s.db.Where("member_id = ?", memberID)
	if len(actions) > 0 {
		q = q.Where("action IN ?", actions)
	}

	var cases []Case
	if err := q.Order("created_at").Find(&cases).Error; err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	return cases, nil
}

// UpdateCaseReference patches the reference URL of an existing case.
// This is the only field a case ever changes after creation.
func (s *Store) UpdateCaseReference(caseID, url string) error {
	res := s.db.Model(&Case{}).Where("id = ?", caseID).Update("reference", url)
	if res.Error != nil {
		return fmt.Errorf("failed to update case reference: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
