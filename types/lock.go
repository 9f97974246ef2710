package types

// LockPosition names the two positions of the wheel lock actuator. The
// actuator is exposed for manual control only; no code path couples it to
// the revolution count.
type LockPosition uint8

const (
	LockOpen LockPosition = iota
	LockClosed
)

func (p LockPosition) String() string {
	if p == LockClosed {
		return "closed"
	}
	return "open"
}
