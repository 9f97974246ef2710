package wheel

import (
	"sync"
	"testing"
)

func TestSnapshotDoesNotReset(t *testing.T) {
	var c Counter
	for i := 0; i < 5; i++ {
		c.Bump()
	}
	if got := c.Snapshot(); got != 5 {
		t.Fatalf("Snapshot = %d, want 5", got)
	}
	if got := c.Snapshot(); got != 5 {
		t.Fatalf("second Snapshot = %d, want 5", got)
	}
}

func TestTakeResets(t *testing.T) {
	var c Counter
	c.Bump()
	c.Bump()
	if got := c.Take(); got != 2 {
		t.Fatalf("Take = %d, want 2", got)
	}
	if got := c.Snapshot(); got != 0 {
		t.Fatalf("counter after Take = %d, want 0", got)
	}
}

// No increment may be lost or double-counted across read/reset pairs, no
// matter how bumps interleave with takes. Bumps run in a separate goroutine
// standing in for the interrupt context.
func TestTakeConservation(t *testing.T) {
	const n = 10000

	var c Counter
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			c.Bump()
		}
	}()

	var total uint64
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		total += uint64(c.Take())
		select {
		case <-done:
			total += uint64(c.Take())
			if total != n {
				t.Errorf("sum of takes = %d, want %d", total, n)
			}
			return
		default:
		}
	}
}

func TestManyWritersConserved(t *testing.T) {
	// The device has a single interrupt source, but the critical section
	// must hold even under a harsher schedule.
	const writers, per = 8, 2000

	var c Counter
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				c.Bump()
			}
		}()
	}

	var total uint64
	stop := make(chan struct{})
	go func() {
		wg.Wait()
		close(stop)
	}()
	for alive := true; alive; {
		select {
		case <-stop:
			alive = false
		default:
		}
		total += uint64(c.Take())
	}
	total += uint64(c.Take())

	if want := uint64(writers * per); total != want {
		t.Errorf("sum of takes = %d, want %d", total, want)
	}
}
