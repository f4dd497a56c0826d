package sweeper

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unreal-slackers/quinn/internal/store"
)

type fakeRoster struct {
	present map[string]bool
}

func (f *fakeRoster) Member(userID string) (*discordgo.Member, error) {
	if !f.present[userID] {
		return nil, errors.New("unknown member")
	}
	return &discordgo.Member{User: &discordgo.User{ID: userID}}, nil
}

func (f *fakeRoster) GuildName() string    { return "Test Guild" }
func (f *fakeRoster) GuildIconURL() string { return "" }

type fakeNotifier struct {
	mu        sync.Mutex
	delivered []*discordgo.MessageEmbed
	targets   []string
	fail      bool
}

func (f *fakeNotifier) SendBestEffort(memberID string, embed *discordgo.MessageEmbed) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false
	}
	f.delivered = append(f.delivered, embed)
	f.targets = append(f.targets, memberID)
	return true
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func addStrike(t *testing.T, s *store.Store, memberID string, exp time.Time) {
	t.Helper()
	_, err := s.CreateCase(store.CaseData{
		Action:     store.ActionStrikeAdded,
		MemberID:   memberID,
		Reason:     "test",
		Expiration: exp,
	})
	require.NoError(t, err)
}

func TestSweepExpiresOnlyPastStrikes(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	addStrike(t, st, "42", now.Add(-time.Minute))
	addStrike(t, st, "42", now.Add(time.Minute))

	notifier := &fakeNotifier{}
	sw := New(st, &fakeRoster{present: map[string]bool{"42": true}}, notifier, nil)

	res := sw.Sweep(now)
	assert.Equal(t, 1, res.Expired)
	assert.Equal(t, 1, res.Notified)

	require.Len(t, notifier.delivered, 1)
	assert.Equal(t, "42", notifier.targets[0])
	assert.Contains(t, notifier.delivered[0].Description, "1 strike remaining")

	active, err := st.FindActiveStrikes("42")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.True(t, active[0].Expiration.After(now))
}

func TestSweepIdempotentAtSameClock(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	addStrike(t, st, "42", now.Add(-time.Minute))

	notifier := &fakeNotifier{}
	sw := New(st, &fakeRoster{present: map[string]bool{"42": true}}, notifier, nil)

	first := sw.Sweep(now)
	second := sw.Sweep(now)

	assert.Equal(t, 1, first.Expired)
	assert.Equal(t, 0, second.Expired)
	assert.Len(t, notifier.delivered, 1)
}

func TestSweepDeactivatesEvenWhenMemberAbsent(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	addStrike(t, st, "gone", now.Add(-time.Minute))
	addStrike(t, st, "42", now.Add(-time.Minute))

	notifier := &fakeNotifier{}
	sw := New(st, &fakeRoster{present: map[string]bool{"42": true}}, notifier, nil)

	res := sw.Sweep(now)
	assert.Equal(t, 2, res.Expired)
	assert.Equal(t, 1, res.Notified)
	assert.Equal(t, 1, res.Failed)

	// Absent member's strike is still deactivated
	active, err := st.FindActiveStrikes("gone")
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestSweepNotificationFailureDoesNotAbort(t *testing.T) {
	st := newTestStore(t)
	now := time.Now()
	addStrike(t, st, "42", now.Add(-time.Minute))
	addStrike(t, st, "99", now.Add(-time.Minute))

	notifier := &fakeNotifier{fail: true}
	roster := &fakeRoster{present: map[string]bool{"42": true, "99": true}}
	sw := New(st, roster, notifier, nil)

	res := sw.Sweep(now)
	assert.Equal(t, 2, res.Expired)
	assert.Equal(t, 0, res.Notified)

	for _, id := range []string{"42", "99"} {
		active, err := st.FindActiveStrikes(id)
		require.NoError(t, err)
		assert.Empty(t, active)
	}
}

func TestSweepsAreSerialized(t *testing.T) {
	st := newTestStore(t)
	sw := New(st, &fakeRoster{}, &fakeNotifier{}, nil)

	sw.running.Lock()
	res := sw.Sweep(time.Now())
	sw.running.Unlock()

	assert.True(t, res.Skipped)
}

func TestNextMidnight(t *testing.T) {
	now := time.Date(2024, 6, 1, 17, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), nextMidnight(now))

	// A fire exactly at midnight schedules the following midnight
	at := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), nextMidnight(at))
}
