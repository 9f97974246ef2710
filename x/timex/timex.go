package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Uptime measures monotonic milliseconds since Start.
// time.Since uses the monotonic clock on both host and TinyGo.
type Uptime struct {
	start time.Time
}

func StartUptime() Uptime { return Uptime{start: time.Now()} }

// Ms returns elapsed milliseconds since Start. Only increases.
func (u Uptime) Ms() int64 { return time.Since(u.start).Milliseconds() }

// WholeMinutes converts elapsed milliseconds to whole minutes.
func WholeMinutes(elapsedMs int64) int64 { return elapsedMs / 60_000 }
