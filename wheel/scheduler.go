package wheel

import "lostwheel-go/types"

// Scheduler decides when a reporting interval has elapsed. It is polled
// from the main loop and never blocks; between boundaries Due is a cheap
// comparison.
type Scheduler struct {
	periodMs int64
	lastMs   int64
}

func NewScheduler(periodMs int64) *Scheduler {
	if periodMs <= 0 {
		periodMs = types.DefaultPeriodMs
	}
	return &Scheduler{periodMs: periodMs}
}

// Due reports whether a period boundary has passed since the last tick,
// and if so advances the boundary to nowMs. Resyncing to "now" rather than
// stepping by the period absorbs loop jitter and coalesces missed
// boundaries into a single tick; systematic loop overhead makes intervals
// measure slightly long, which is accepted.
func (s *Scheduler) Due(nowMs int64) bool {
	if nowMs-s.lastMs < s.periodMs {
		return false
	}
	s.lastMs = nowMs
	return true
}

func (s *Scheduler) PeriodMs() int64 { return s.periodMs }

// SetPeriod changes the cadence while keeping the last boundary, so a
// reconfigure mid-interval does not fire an early tick.
func (s *Scheduler) SetPeriod(periodMs int64) {
	if periodMs <= 0 {
		periodMs = types.DefaultPeriodMs
	}
	s.periodMs = periodMs
}
