//go:build !tinygo

package wheel

import "sync"

// On the host a simulated ISR is just another goroutine, so the critical
// section is a mutex that both sides take. A Bump raised while a snapshot
// holds the section blocks until it reopens and is counted in the next
// interval, which is exactly the deferred-interrupt behaviour of the MCU.

var irqMu sync.Mutex

type irqState struct{}

func irqDisable() irqState  { irqMu.Lock(); return irqState{} }
func irqRestore(_ irqState) { irqMu.Unlock() }

// Bump records one revolution from a simulated interrupt context.
func (c *Counter) Bump() {
	s := irqDisable()
	c.n++
	irqRestore(s)
}
