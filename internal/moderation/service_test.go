package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unreal-slackers/quinn/internal/store"
)

type fakePlatform struct {
	eligible bool
	banErr   error

	calls  []string
	banned []string
	kicked []string
}

func (f *fakePlatform) GuildName() string    { return "Test Guild" }
func (f *fakePlatform) GuildIconURL() string { return "" }

func (f *fakePlatform) CanModerate(target *discordgo.Member) (bool, error) {
	return f.eligible, nil
}

func (f *fakePlatform) Ban(userID string, deleteDays int, reason string) error {
	if f.banErr != nil {
		return f.banErr
	}
	f.calls = append(f.calls, "ban")
	f.banned = append(f.banned, userID)
	return nil
}

func (f *fakePlatform) Kick(userID, reason string) error {
	f.calls = append(f.calls, "kick")
	f.kicked = append(f.kicked, userID)
	return nil
}

func (f *fakePlatform) Unban(userID string) error {
	f.calls = append(f.calls, "unban")
	return nil
}

func (f *fakePlatform) PostEmbed(channelID string, embed *discordgo.MessageEmbed) (*discordgo.Message, error) {
	f.calls = append(f.calls, "log")
	return &discordgo.Message{ID: "log-msg"}, nil
}

func (f *fakePlatform) MessageLink(channelID, messageID string) string {
	return "https://discord.com/channels/g/" + channelID + "/" + messageID
}

type recordingNotifier struct {
	calls     *fakePlatform
	delivered bool
	targets   []string
}

func (r *recordingNotifier) SendBestEffort(memberID string, embed *discordgo.MessageEmbed) bool {
	r.calls.calls = append(r.calls.calls, "notify")
	r.targets = append(r.targets, memberID)
	return r.delivered
}

func member(id string) *discordgo.Member {
	return &discordgo.Member{User: &discordgo.User{ID: id, Username: "user-" + id}}
}

func newService(t *testing.T, platform *fakePlatform, notifier *recordingNotifier) (*Service, *store.Store) {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	svc := NewService(st, platform, notifier, "log-channel", "https://appeal", 90*24*time.Hour)
	return svc, st
}

func TestBanNotifiesBeforeRemoval(t *testing.T) {
	platform := &fakePlatform{eligible: true}
	notifier := &recordingNotifier{calls: platform, delivered: true}
	svc, st := newService(t, platform, notifier)

	res, err := svc.Ban(member("123"), 1, "spam", Actor{ID: "mod", Name: "Mod"})
	require.NoError(t, err)
	assert.True(t, res.Notified)

	// Notification strictly precedes the ban
	assert.Equal(t, []string{"notify", "ban", "log"}, platform.calls)
	assert.Equal(t, []string{"123"}, notifier.targets)

	cases, err := st.FindCasesByMember("123")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, store.ActionBanned, cases[0].Action)
	require.NotNil(t, cases[0].Reference)
	assert.Contains(t, *cases[0].Reference, "log-msg")
}

func TestBanCleansSlateForTargetOnly(t *testing.T) {
	platform := &fakePlatform{eligible: true}
	notifier := &recordingNotifier{calls: platform}
	svc, st := newService(t, platform, notifier)

	for _, id := range []string{"123", "123", "999"} {
		_, err := st.CreateCase(store.CaseData{
			Action:     store.ActionStrikeAdded,
			MemberID:   id,
			Reason:     "prior",
			Expiration: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)
	}

	_, err := svc.Ban(member("123"), 0, "spam", Actor{ID: "mod", Name: "Mod"})
	require.NoError(t, err)

	wiped, err := st.FindActiveStrikes("123")
	require.NoError(t, err)
	assert.Empty(t, wiped)

	untouched, err := st.FindActiveStrikes("999")
	require.NoError(t, err)
	assert.Len(t, untouched, 1)
}

func TestBanIneligibleMutatesNothing(t *testing.T) {
	platform := &fakePlatform{eligible: false}
	notifier := &recordingNotifier{calls: platform}
	svc, st := newService(t, platform, notifier)

	_, err := svc.Ban(member("123"), 0, "spam", Actor{ID: "mod"})
	assert.ErrorIs(t, err, ErrNotEligible)
	assert.Empty(t, platform.calls)

	cases, err := st.FindCasesByMember("123")
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestBanAPIFailureLeavesNoCase(t *testing.T) {
	platform := &fakePlatform{eligible: true, banErr: errors.New("api down")}
	notifier := &recordingNotifier{calls: platform}
	svc, st := newService(t, platform, notifier)

	_, err := svc.Ban(member("123"), 0, "spam", Actor{ID: "mod"})
	assert.Error(t, err)

	cases, err := st.FindCasesByMember("123")
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestKickNotifiesBeforeRemoval(t *testing.T) {
	platform := &fakePlatform{eligible: true}
	notifier := &recordingNotifier{calls: platform, delivered: false}
	svc, st := newService(t, platform, notifier)

	res, err := svc.Kick(member("123"), "rude", Actor{ID: "mod", Name: "Mod"})
	require.NoError(t, err)

	// Delivery failed but the kick still went ahead
	assert.False(t, res.Notified)
	assert.Equal(t, []string{"notify", "kick", "log"}, platform.calls)

	cases, err := st.FindCasesByMember("123", store.ActionKicked)
	require.NoError(t, err)
	assert.Len(t, cases, 1)
}

func TestStrikeCreatesStrikeAndNotifiesCount(t *testing.T) {
	platform := &fakePlatform{eligible: true}
	notifier := &recordingNotifier{calls: platform, delivered: true}
	svc, st := newService(t, platform, notifier)

	res, err := svc.Strike(member("42"), "rule 3", Actor{ID: "mod", Name: "Mod"})
	require.NoError(t, err)
	assert.True(t, res.Notified)

	strikes, err := st.FindActiveStrikes("42")
	require.NoError(t, err)
	require.Len(t, strikes, 1)
	assert.Equal(t, res.Case.ID, strikes[0].CaseID)
}

type failingLedger struct{ err error }

func (f *failingLedger) CreateCase(store.CaseData) (*store.Case, error) { return nil, f.err }
func (f *failingLedger) UpdateCaseReference(string, string) error       { return nil }
func (f *failingLedger) DeactivateMemberStrikes(string) (int64, error)  { return 0, nil }
func (f *failingLedger) CountActiveStrikes(string) (int64, error)       { return 0, nil }

func TestUnbanStoreFailureSurfacesError(t *testing.T) {
	platform := &fakePlatform{}
	notifier := &recordingNotifier{calls: platform}
	storeErr := errors.New("disk full")
	svc := NewService(&failingLedger{err: storeErr}, platform, notifier, "log-channel", "", time.Hour)

	_, err := svc.Unban(&discordgo.User{ID: "123", Username: "user"}, "appealed", Actor{ID: "mod"})
	// The unban itself went through; the caller must still see the store error
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, []string{"unban"}, platform.calls)
}

func TestUnbanRecordsCase(t *testing.T) {
	platform := &fakePlatform{eligible: true}
	notifier := &recordingNotifier{calls: platform}
	svc, st := newService(t, platform, notifier)

	_, err := svc.Unban(&discordgo.User{ID: "123", Username: "user"}, "appealed", Actor{ID: "mod"})
	require.NoError(t, err)
	assert.Equal(t, []string{"unban", "log"}, platform.calls)

	cases, err := st.FindCasesByMember("123", store.ActionUnbanned)
	require.NoError(t, err)
	assert.Len(t, cases, 1)
}
