// Package watchdog detects stalled background loops. The sweeper beats
// once per scheduler wake; a missing beat past the threshold is logged
// and reflected in the status command.
package watchdog

import (
	"sync/atomic"
	"time"

	"github.com/unreal-slackers/quinn/internal/logging"
)

type Watchdog struct {
	components    map[string]*componentHealth
	checkInterval time.Duration
	stop          chan struct{}
	done          chan struct{}
}

type componentHealth struct {
	name          string
	lastHeartbeat int64
	healthy       uint32
	threshold     time.Duration
}

func New(checkInterval time.Duration) *Watchdog {
	return &Watchdog{
		components:    make(map[string]*componentHealth),
		checkInterval: checkInterval,
		stop:          make(chan struct{}),
		done:          make(chan struct{}),
	}
}

// Register adds a component. All registrations happen before Start, so
// the map itself is never written concurrently.
func (w *Watchdog) Register(name string, threshold time.Duration) {
	w.components[name] = &componentHealth{
		name:      name,
		healthy:   1,
		threshold: threshold,
	}
}

// Heartbeat records liveness for a component.
func (w *Watchdog) Heartbeat(name string) {
	if comp, ok := w.components[name]; ok {
		atomic.StoreInt64(&comp.lastHeartbeat, time.Now().UnixNano())
		atomic.StoreUint32(&comp.healthy, 1)
	}
}

func (w *Watchdog) Start() {
	go w.monitorLoop()
}

// Stop shuts the monitor down and waits for it to exit, so no check runs
// after Stop returns.
func (w *Watchdog) Stop() {
	close(w.stop)
	<-w.done
}

func (w *Watchdog) monitorLoop() {
	defer close(w.done)

	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stop:
			return
		}
	}
}

func (w *Watchdog) check() {
	now := time.Now().UnixNano()

	for name, comp := range w.components {
		lastBeat := atomic.LoadInt64(&comp.lastHeartbeat)
		if lastBeat == 0 {
			continue
		}

		elapsed := time.Duration(now - lastBeat)
		if elapsed > comp.threshold {
			if atomic.SwapUint32(&comp.healthy, 0) == 1 {
				logging.Error("Watchdog: %s stalled (no heartbeat for %v)", name, elapsed)
			}
		}
	}
}

// Status reports per-component health for the status command.
func (w *Watchdog) Status() map[string]bool {
	status := make(map[string]bool)
	for name, comp := range w.components {
		status[name] = atomic.LoadUint32(&comp.healthy) == 1
	}
	return status
}
