package store

import (
	"fmt"
	"time"
)

// FindActiveStrikes returns the member's strikes that are still active.
func (s *Store) FindActiveStrikes(memberID string) ([]Strike, error) {
	var strikes []Strike
	err := s.db.Where("member_id = ? AND is_active = ?", memberID, true).
		Order("expiration").Find(&strikes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query strikes: %w", err)
	}
	return strikes, nil
}

// CountActiveStrikes returns how many active strikes a member has.
func (s *Store) CountActiveStrikes(memberID string) (int64, error) {
	var count int64
	err := s.db.Model(&Strike{}).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count strikes: %w", err)
	}
	return count, nil
}

// FindExpiredActiveStrikes returns every active strike whose expiration
// has passed as of now. Strikes already deactivated never reappear here,
// which is what makes the expiration sweep idempotent.
func (s *Store) FindExpiredActiveStrikes(now time.Time) ([]Strike, error) {
	var strikes []Strike
	err := s.db.Where("is_active = ? AND expiration <= ?", true, now).
		Order("expiration").Find(&strikes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expired strikes: %w", err)
	}
	return strikes, nil
}

// DeactivateStrikes flips the given strikes to inactive. Strikes that are
// already inactive are left alone; a strike never goes back to active.
func (s *Store) DeactivateStrikes(strikeIDs []string) error {
	if len(strikeIDs) == 0 {
		return nil
	}
	err := s.db.Model(&Strike{}).
		Where("id IN ? AND is_active = ?", strikeIDs, true).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate strikes: %w", err)
	}
	return nil
}

// DeactivateMemberStrikes deactivates every active strike belonging to
// the member, regardless of which case created them. This is the clean
// slate applied when a member is banned or kicked. Deactivation is keyed
// strictly by member id so no other member's strikes can be touched.
func (s *Store) DeactivateMemberStrikes(memberID string) (int64, error) {
	res := s.db.Model(&Strike{}).
		Where("member_id = ? AND is_active = ?", memberID, true).
		Update("is_active", false)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to deactivate strikes: %w", res.Error)
	}
	return res.RowsAffected, nil
}
