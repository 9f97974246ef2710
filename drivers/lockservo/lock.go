// drivers/lockservo/lock.go
package lockservo

import "lostwheel-go/types"

// Actuator moves the physical latch arm. The servo driver in
// tinygo.org/x/drivers satisfies it on MCU builds.
type Actuator interface {
	SetAngle(angle int) error
}

// Arm angles for the latch positions.
const (
	openAngle   = 0
	closedAngle = 90
)

// Lock drives the wheel door latch. It holds no schedule and no policy:
// callers decide when to move it, the lock only moves and remembers where
// it is.
type Lock struct {
	act Actuator
	pos types.LockPosition
}

// New moves the latch to the open position and returns the lock.
func New(act Actuator) (*Lock, error) {
	l := &Lock{act: act, pos: types.LockOpen}
	if err := act.SetAngle(openAngle); err != nil {
		return nil, err
	}
	return l, nil
}

// Set moves the latch. Moving to the current position is a no-op.
func (l *Lock) Set(pos types.LockPosition) error {
	if pos == l.pos {
		return nil
	}
	angle := openAngle
	if pos == types.LockClosed {
		angle = closedAngle
	}
	if err := l.act.SetAngle(angle); err != nil {
		return err
	}
	l.pos = pos
	return nil
}

// Position reports where the latch last settled.
func (l *Lock) Position() types.LockPosition { return l.pos }
