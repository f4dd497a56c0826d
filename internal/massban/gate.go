package massban

import (
	"sync"
	"time"
)

// Decision is the single terminal event a confirmation gate delivers.
type Decision int

const (
	DecisionTimeout Decision = iota
	DecisionConfirm
	DecisionCancel
)

// Gate is a bounded confirmation window. Exactly one of Confirm, Cancel
// or the timeout resolves it; everything after the first resolution is
// inert. Wait always returns, so the subscription tears itself down on
// whichever terminal event comes first.
type Gate struct {
	decision chan Decision
	once     sync.Once
	window   time.Duration
}

func NewGate(window time.Duration) *Gate {
	return &Gate{
		decision: make(chan Decision, 1),
		window:   window,
	}
}

func (g *Gate) resolve(d Decision) bool {
	resolved := false
	g.once.Do(func() {
		g.decision <- d
		resolved = true
	})
	return resolved
}

// Confirm resolves the gate with a confirmation. The return value
// reports whether this call was the resolving event.
func (g *Gate) Confirm() bool {
	return g.resolve(DecisionConfirm)
}

// Cancel resolves the gate with a cancellation.
func (g *Gate) Cancel() bool {
	return g.resolve(DecisionCancel)
}

// Wait blocks until the gate resolves or the window elapses.
func (g *Gate) Wait() Decision {
	timer := time.NewTimer(g.window)
	defer timer.Stop()

	select {
	case d := <-g.decision:
		return d
	case <-timer.C:
		// Mark resolved so late button presses stay inert
		g.once.Do(func() {})
		return DecisionTimeout
	}
}
