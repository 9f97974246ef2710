package wheel

import (
	"io"

	"lostwheel-go/types"
	"lostwheel-go/x/timex"
)

// Panel is the display sink. Implementations overwrite fixed value regions;
// they never scroll.
type Panel interface {
	ShowCount(count uint32)
	ShowMinutes(min int64)
}

// Reporter turns a scheduler tick into one rendered ReportRecord.
// It is stateless between ticks beyond what the mode dictates about
// resetting the counter; a render completes synchronously within the tick.
type Reporter struct {
	Mode     types.ReportingMode
	PeriodMs int64
	Counter  *Counter
	Panel    Panel     // optional
	Records  io.Writer // serial sink; used in interval mode only

	writeErrs uint32
}

// Report snapshots the counter per the mode and renders to the sinks.
// In interval mode the snapshot and reset are one critical section, so no
// edge between them can be lost. Sink write failures are counted and
// dropped; the loop must never block on an output.
func (r *Reporter) Report(elapsedMs int64) types.ReportRecord {
	rec := types.ReportRecord{ElapsedMs: elapsedMs}

	switch r.Mode {
	case types.ModeInterval:
		rec.Count = r.Counter.Take()
		if r.Records != nil {
			line := FormatRecord(elapsedMs, r.PeriodMs, rec.Count)
			if _, err := io.WriteString(r.Records, line); err != nil {
				r.writeErrs++
			}
		}
		if r.Panel != nil {
			r.Panel.ShowCount(rec.Count)
			r.Panel.ShowMinutes(timex.WholeMinutes(elapsedMs))
		}
	default: // cumulative: running total to the panel, nothing on serial
		rec.Count = r.Counter.Snapshot()
		if r.Panel != nil {
			r.Panel.ShowCount(rec.Count)
		}
	}
	return rec
}

// WriteErrs returns how many sink writes have failed since start.
func (r *Reporter) WriteErrs() uint32 { return r.writeErrs }
