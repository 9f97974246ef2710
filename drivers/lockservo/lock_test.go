package lockservo

import (
	"errors"
	"testing"

	"lostwheel-go/types"
)

type fakeActuator struct {
	angles []int
	fail   bool
}

func (f *fakeActuator) SetAngle(a int) error {
	if f.fail {
		return errors.New("pwm not configured")
	}
	f.angles = append(f.angles, a)
	return nil
}

func TestNewParksOpen(t *testing.T) {
	act := &fakeActuator{}
	l, err := New(act)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(act.angles) != 1 || act.angles[0] != openAngle {
		t.Errorf("angles = %v, want [%d]", act.angles, openAngle)
	}
	if l.Position() != types.LockOpen {
		t.Errorf("position = %v, want open", l.Position())
	}
}

func TestSetMovesAndRemembers(t *testing.T) {
	act := &fakeActuator{}
	l, _ := New(act)

	if err := l.Set(types.LockClosed); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if l.Position() != types.LockClosed {
		t.Errorf("position = %v, want closed", l.Position())
	}

	// Same position again moves nothing.
	n := len(act.angles)
	if err := l.Set(types.LockClosed); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if len(act.angles) != n {
		t.Error("redundant Set moved the actuator")
	}
}

func TestFailedMoveKeepsPosition(t *testing.T) {
	act := &fakeActuator{}
	l, _ := New(act)

	act.fail = true
	if err := l.Set(types.LockClosed); err == nil {
		t.Fatal("expected actuator error")
	}
	if l.Position() != types.LockOpen {
		t.Errorf("position = %v after failed move, want open", l.Position())
	}
}
