package wheel

// Counter is the revolution count shared between the sensor interrupt and
// the main loop. Exactly one writer (the ISR, via Bump) and one reader (the
// reporter, via Snapshot/Take). The reader side brackets every access in a
// critical section so the value is never torn and a paired read/reset can
// never lose an increment: an edge that fires while the section is closed
// is deferred by the platform and lands in the next interval.
//
// uint32 gives years of headroom at wheel rates; wraparound past the limit
// is silent and accepted.
type Counter struct {
	n uint32
}

// Snapshot returns the count at a single well-defined instant without
// resetting it. Cumulative-mode reads use this.
func (c *Counter) Snapshot() uint32 {
	s := irqDisable()
	v := c.n
	irqRestore(s)
	return v
}

// Take returns the count and zeroes it in the same critical section.
// Interval-mode ticks use this; the read and reset are indivisible.
func (c *Counter) Take() uint32 {
	s := irqDisable()
	v := c.n
	c.n = 0
	irqRestore(s)
	return v
}
