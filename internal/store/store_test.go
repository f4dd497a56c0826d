package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateCaseAndPatchReference(t *testing.T) {
	s := newTestStore(t)

	c, err := s.CreateCase(CaseData{
		Action:   ActionBanned,
		MemberID: "123",
		Member:   "spammer",
		Reason:   "spam",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.False(t, c.CreatedAt.IsZero())
	assert.Nil(t, c.Reference)

	require.NoError(t, s.UpdateCaseReference(c.ID, "https://log/1"))

	cases, err := s.FindCasesByMember("123")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	require.NotNil(t, cases[0].Reference)
	assert.Equal(t, "https://log/1", *cases[0].Reference)
}

func TestCreateCaseRejectsUnknownAction(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCase(CaseData{Action: "Scolded", MemberID: "123"})
	assert.Error(t, err)
}

func TestUpdateCaseReferenceUnknownID(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateCaseReference("nope", "https://log/1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStrikeCaseCreatesStrike(t *testing.T) {
	s := newTestStore(t)
	exp := time.Now().Add(24 * time.Hour)

	c, err := s.CreateCase(CaseData{
		Action:     ActionStrikeAdded,
		MemberID:   "42",
		Reason:     "rule 1",
		Expiration: exp,
	})
	require.NoError(t, err)

	strikes, err := s.FindActiveStrikes("42")
	require.NoError(t, err)
	require.Len(t, strikes, 1)
	assert.Equal(t, c.ID, strikes[0].CaseID)
	assert.True(t, strikes[0].IsActive)
}

func TestStrikeCaseRequiresExpiration(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCase(CaseData{Action: ActionStrikeAdded, MemberID: "42"})
	assert.Error(t, err)
}

func addStrike(t *testing.T, s *Store, memberID string, exp time.Time) Strike {
	t.Helper()
	_, err := s.CreateCase(CaseData{
		Action:     ActionStrikeAdded,
		MemberID:   memberID,
		Reason:     "test",
		Expiration: exp,
	})
	require.NoError(t, err)
	strikes, err := s.FindActiveStrikes(memberID)
	require.NoError(t, err)
	return strikes[len(strikes)-1]
}

func TestDeactivateStrikesIdempotent(t *testing.T) {
	s := newTestStore(t)
	strike := addStrike(t, s, "42", time.Now().Add(time.Hour))

	require.NoError(t, s.DeactivateStrikes([]string{strike.ID}))
	require.NoError(t, s.DeactivateStrikes([]string{strike.ID}))

	strikes, err := s.FindActiveStrikes("42")
	require.NoError(t, err)
	assert.Empty(t, strikes)
}

func TestCleanSlateIsKeyedByMember(t *testing.T) {
	s := newTestStore(t)
	addStrike(t, s, "42", time.Now().Add(time.Hour))
	addStrike(t, s, "42", time.Now().Add(2*time.Hour))
	addStrike(t, s, "99", time.Now().Add(time.Hour))

	n, err := s.DeactivateMemberStrikes("42")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	strikes, err := s.FindActiveStrikes("42")
	require.NoError(t, err)
	assert.Empty(t, strikes)

	other, err := s.FindActiveStrikes("99")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestFindExpiredActiveStrikes(t *testing.T) {
	s := newTestStore(t)
	now := time.Now()
	expired := addStrike(t, s, "42", now.Add(-time.Hour))
	addStrike(t, s, "42", now.Add(time.Hour))

	found, err := s.FindExpiredActiveStrikes(now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, expired.ID, found[0].ID)

	// Once deactivated the strike no longer matches
	require.NoError(t, s.DeactivateStrikes([]string{expired.ID}))
	found, err = s.FindExpiredActiveStrikes(now)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindCasesByMemberActionFilter(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCase(CaseData{Action: ActionBanned, MemberID: "7", Reason: "a"})
	require.NoError(t, err)
	_, err = s.CreateCase(CaseData{Action: ActionKicked, MemberID: "7", Reason: "b"})
	require.NoError(t, err)

	cases, err := s.FindCasesByMember("7", ActionKicked)
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, ActionKicked, cases[0].Action)
}
