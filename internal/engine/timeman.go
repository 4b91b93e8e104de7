package engine

import (
	"sync/atomic"
	"time"
)

// hardTimeoutFactor is how far past the goal a search may run before the
// abort timer fires unconditionally, regardless of how the iterative
// deepening loop itself is pacing iterations.
const hardTimeoutFactor = 3

// TimeManager tracks a single search's goal deadline and the global
// abort flag every worker polls. It is handed a goal duration directly;
// deriving that goal from a clock/increment message is the command
// loop's job, not this package's.
type TimeManager struct {
	start    time.Time
	goal     time.Duration
	hardStop time.Duration
	abortf   atomic.Bool
	nodes    atomic.Uint64
}

// NewTimeManager starts a timer with goal as the soft deadline and
// 3*goal as the hard one.
func NewTimeManager(goal time.Duration) *TimeManager {
	return &TimeManager{
		start:    time.Now(),
		goal:     goal,
		hardStop: goal * hardTimeoutFactor,
	}
}

// Elapsed returns the time since the search began.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.start)
}

// PastGoal reports whether the soft deadline has passed — the
// iterative-deepening driver uses this to decide whether to start
// another depth, not whether to abort mid-search.
func (tm *TimeManager) PastGoal() bool {
	return tm.Elapsed() >= tm.goal
}

// Abort forces the global abort flag, e.g. when the caller cancels
// outright.
func (tm *TimeManager) Abort() {
	tm.abortf.Store(true)
}

// Aborted reports the latched abort state without touching the clock.
func (tm *TimeManager) Aborted() bool {
	return tm.abortf.Load()
}

// Tick is the per-node-visit abort check, called on every node visit: it
// samples the clock only on every period'th (ABORT_CHECK_PERIOD) call and
// latches abortf once the hard timeout has passed.
func (tm *TimeManager) Tick(period int) bool {
	if period <= 0 {
		period = 1
	}
	n := tm.nodes.Add(1)
	if n%uint64(period) != 0 {
		return tm.abortf.Load()
	}
	if tm.Elapsed() >= tm.hardStop {
		tm.abortf.Store(true)
	}
	return tm.abortf.Load()
}

// Nodes returns the number of Tick calls observed so far, a proxy for
// total node visits across all workers.
func (tm *TimeManager) Nodes() uint64 {
	return tm.nodes.Load()
}
