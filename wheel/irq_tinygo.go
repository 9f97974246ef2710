//go:build tinygo

package wheel

import "runtime/interrupt"

// On hardware the critical section masks interrupts for the few
// instructions covering the shared counter access.

type irqState = interrupt.State

func irqDisable() irqState  { return interrupt.Disable() }
func irqRestore(s irqState) { interrupt.Restore(s) }

// Bump records one revolution. ISR context only: a single increment, no
// allocation, no I/O. The main loop never runs while an ISR is active, so
// no guard is needed on this side.
func (c *Counter) Bump() { c.n++ }
