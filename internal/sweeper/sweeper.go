// Package sweeper runs the daily strike-expiration sweep. Each strike's
// absolute expiration is compared against the wall clock, so a fire
// missed during downtime self-corrects on the next one.
package sweeper

import (
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/unreal-slackers/quinn/internal/logging"
	"github.com/unreal-slackers/quinn/internal/notify"
	"github.com/unreal-slackers/quinn/internal/store"
)

// StrikeStore is the slice of the ledger the sweep needs.
type StrikeStore interface {
	FindExpiredActiveStrikes(now time.Time) ([]store.Strike, error)
	DeactivateStrikes(strikeIDs []string) error
	CountActiveStrikes(memberID string) (int64, error)
}

// Roster resolves members and identifies the guild in notices.
type Roster interface {
	Member(userID string) (*discordgo.Member, error)
	GuildName() string
	GuildIconURL() string
}

// Notifier delivers best-effort notices.
type Notifier interface {
	SendBestEffort(memberID string, embed *discordgo.MessageEmbed) bool
}

// Heartbeater receives liveness signals from the scheduler loop.
type Heartbeater interface {
	Heartbeat(name string)
}

// Result summarizes one sweep for logging and tests.
type Result struct {
	Expired  int
	Notified int
	Failed   int
	Skipped  bool
}

type Sweeper struct {
	store  StrikeStore
	roster Roster
	notify Notifier
	pulse  Heartbeater

	running sync.Mutex
	stop    chan struct{}
	done    chan struct{}
}

func New(st StrikeStore, roster Roster, notifier Notifier, pulse Heartbeater) *Sweeper {
	return &Sweeper{
		store:  st,
		roster: roster,
		notify: notifier,
		pulse:  pulse,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Start launches the scheduler loop. It fires at every UTC midnight, the
// same fixed calendar schedule the bot has always used.
func (s *Sweeper) Start() {
	go s.loop()
}

// Stop shuts the scheduler loop down and waits for it to exit. A sweep
// already in flight finishes first.
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) loop() {
	defer close(s.done)

	for {
		now := time.Now()
		timer := time.NewTimer(nextMidnight(now).Sub(now))

		if s.pulse != nil {
			s.pulse.Heartbeat("sweeper")
		}

		select {
		case <-s.stop:
			timer.Stop()
			return
		case fired := <-timer.C:
			res := s.Sweep(fired)
			if res.Skipped {
				logging.Warn("Expiration sweep skipped: previous sweep still running")
			} else {
				logging.Info("Expiration sweep: %d expired, %d notified, %d failed",
					res.Expired, res.Notified, res.Failed)
			}
		}
	}
}

func nextMidnight(now time.Time) time.Time {
	t := now.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
}

// Sweep deactivates every strike whose expiration has passed and
// notifies the owning members. Sweeps never overlap: if one is still
// running, the new fire is dropped rather than queued, since the next
// scheduled fire re-examines the same absolute expirations anyway.
func (s *Sweeper) Sweep(now time.Time) Result {
	if !s.running.TryLock() {
		return Result{Skipped: true}
	}
	defer s.running.Unlock()

	expired, err := s.store.FindExpiredActiveStrikes(now)
	if err != nil {
		logging.Error("Expiration sweep aborted: %v", err)
		return Result{Failed: 1}
	}

	var res Result
	for _, strike := range expired {
		if s.sweepOne(strike) {
			res.Notified++
		}
		res.Expired++
	}
	res.Failed = res.Expired - res.Notified
	return res
}

// sweepOne processes a single expired strike. Failures stay inside this
// unit of work; the rest of the sweep continues regardless.
func (s *Sweeper) sweepOne(strike store.Strike) bool {
	if err := s.store.DeactivateStrikes([]string{strike.ID}); err != nil {
		logging.Error("Failed to deactivate strike %s: %v", strike.ID, err)
		return false
	}

	// The member may have left since the strike was issued. The
	// deactivation above stands either way.
	member, err := s.roster.Member(strike.MemberID)
	if err != nil || member == nil {
		logging.Info("Strike %s expired for absent member %s", strike.ID, strike.MemberID)
		return false
	}

	remaining, err := s.store.CountActiveStrikes(strike.MemberID)
	if err != nil {
		logging.Error("Failed to count strikes for %s: %v", strike.MemberID, err)
		return false
	}

	guild := notify.GuildInfo{Name: s.roster.GuildName(), IconURL: s.roster.GuildIconURL()}
	return s.notify.SendBestEffort(strike.MemberID, notify.ExpiryNotice(guild, remaining))
}
