package hallsensor

import (
	"testing"

	"lostwheel-go/errcode"
	"lostwheel-go/wheel"
)

func TestAttachCountsFallingEdges(t *testing.T) {
	f := NewSimFactory()
	var c wheel.Counter

	s, err := Attach(f, 16, &c)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	p, _ := f.Pin(16)
	if !p.Get() {
		t.Fatal("pin should idle high with pull-up")
	}

	for i := 0; i < 5; i++ {
		p.Pulse()
	}
	if got := c.Snapshot(); got != 5 {
		t.Errorf("count = %d, want 5", got)
	}
	if s.Pin() != 16 {
		t.Errorf("Pin() = %d, want 16", s.Pin())
	}
}

func TestRisingEdgesIgnored(t *testing.T) {
	f := NewSimFactory()
	var c wheel.Counter
	if _, err := Attach(f, 2, &c); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	p, _ := f.Pin(2)

	p.Drive(false) // one falling edge
	p.Drive(true)  // rising: no count
	p.Drive(true)  // no transition: no count
	if got := c.Snapshot(); got != 1 {
		t.Errorf("count = %d, want 1", got)
	}
}

func TestDetachStopsCounting(t *testing.T) {
	f := NewSimFactory()
	var c wheel.Counter
	s, err := Attach(f, 3, &c)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	p, _ := f.Pin(3)
	p.Pulse()

	if err := s.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	p.Pulse()
	if got := c.Snapshot(); got != 1 {
		t.Errorf("count after detach = %d, want 1", got)
	}
	if s.Pin() != -1 {
		t.Errorf("Pin() after detach = %d, want -1", s.Pin())
	}
	if err := s.Detach(); err != nil {
		t.Errorf("second Detach: %v", err)
	}
}

func TestAttachUnknownPin(t *testing.T) {
	f := NewSimFactory()
	var c wheel.Counter
	_, err := Attach(f, -1, &c)
	if err == nil {
		t.Fatal("expected error for bad pin number")
	}
	if errcode.Of(err) != errcode.UnknownPin {
		t.Errorf("code = %s, want %s", errcode.Of(err), errcode.UnknownPin)
	}
}
