package watchdog

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStalledComponentFlagged(t *testing.T) {
	wd := New(time.Minute)
	wd.Register("sweeper", 10*time.Millisecond)

	wd.Heartbeat("sweeper")
	assert.True(t, wd.Status()["sweeper"])

	atomic.StoreInt64(&wd.components["sweeper"].lastHeartbeat,
		time.Now().Add(-time.Hour).UnixNano())
	wd.check()
	assert.False(t, wd.Status()["sweeper"])

	// A fresh beat recovers the component
	wd.Heartbeat("sweeper")
	wd.check()
	assert.True(t, wd.Status()["sweeper"])
}

func TestNeverBeatenComponentNotFlagged(t *testing.T) {
	wd := New(time.Minute)
	wd.Register("sweeper", time.Millisecond)

	wd.check()
	assert.True(t, wd.Status()["sweeper"])
}

func TestStopWaitsForMonitorExit(t *testing.T) {
	// Interval longer than the test: Stop must interrupt the tick wait
	wd := New(time.Hour)
	wd.Register("sweeper", time.Hour)
	wd.Start()

	stopped := make(chan struct{})
	go func() {
		wd.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return while the monitor was waiting on its ticker")
	}
}
