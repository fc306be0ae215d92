package burn

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool, within time.Duration, msg string) {
	t.Helper()
	deadline := time.Now().Add(within)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestSchedule_RunsAfterDelay(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule("m1", 10*time.Millisecond, func() { fired.Add(1) })
	require.Equal(t, 1, s.Pending())

	waitFor(t, func() bool { return fired.Load() == 1 }, time.Second, "action never fired")
	waitFor(t, func() bool { return s.Pending() == 0 }, time.Second, "timer not reaped")
}

func TestSchedule_ZeroDelayFiresImmediately(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule("m1", 0, func() { fired.Add(1) })
	waitFor(t, func() bool { return fired.Load() == 1 }, time.Second, "immediate action never fired")
}

func TestSchedule_NegativeDelayTreatedAsZero(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule("m1", -time.Hour, func() { fired.Add(1) })
	waitFor(t, func() bool { return fired.Load() == 1 }, time.Second, "expired action never fired")
}

func TestSchedule_RearmReplacesPendingAction(t *testing.T) {
	s := NewScheduler()
	var first, second atomic.Int32

	// Re-observing the same message re-arms the delete; only one action
	// per key may ever fire.
	s.Schedule("m1", 20*time.Millisecond, func() { first.Add(1) })
	s.Schedule("m1", 20*time.Millisecond, func() { second.Add(1) })
	require.Equal(t, 1, s.Pending())

	waitFor(t, func() bool { return second.Load() == 1 }, time.Second, "replacement never fired")
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load(), "replaced action must not fire")
	assert.Equal(t, int32(1), second.Load())
}

func TestCancel_StopsPendingAction(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule("m1", 20*time.Millisecond, func() { fired.Add(1) })
	s.Cancel("m1")
	assert.Equal(t, 0, s.Pending())

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	// Cancelling again or cancelling an unknown key is fine.
	s.Cancel("m1")
	s.Cancel("never-seen")
}

func TestCancelAll_StopsEverythingAndClosesScheduler(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule("m1", 20*time.Millisecond, func() { fired.Add(1) })
	s.Schedule("m2", 20*time.Millisecond, func() { fired.Add(1) })
	require.Equal(t, 2, s.Pending())

	s.CancelAll()
	assert.Equal(t, 0, s.Pending())

	// Scheduling after teardown is ignored.
	s.Schedule("m3", time.Millisecond, func() { fired.Add(1) })
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestSchedule_IndependentKeysBothFire(t *testing.T) {
	s := NewScheduler()
	var fired atomic.Int32

	s.Schedule("m1", 5*time.Millisecond, func() { fired.Add(1) })
	s.Schedule("m2", 10*time.Millisecond, func() { fired.Add(1) })

	waitFor(t, func() bool { return fired.Load() == 2 }, time.Second, "both actions should fire")
}
