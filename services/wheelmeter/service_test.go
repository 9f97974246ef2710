package wheelmeter

import (
	"bytes"
	"testing"

	"lostwheel-go/bus"
	"lostwheel-go/drivers/hallsensor"
	"lostwheel-go/types"
	"lostwheel-go/wheel"
)

func newTestService(t *testing.T, records *bytes.Buffer) (*Service, *hallsensor.SimFactory, *bus.Connection) {
	t.Helper()
	b := bus.NewBus(16)
	conn := b.NewConnection("wheelmeter")
	pins := hallsensor.NewSimFactory()
	var c wheel.Counter
	s := New(Options{
		Conn:    conn,
		Counter: &c,
		Pins:    pins,
		Records: records,
		Now:     func() int64 { return 0 },
	})
	return s, pins, b.NewConnection("test")
}

func intervalConfig(pin int) map[string]any {
	return map[string]any{
		"mode":       "interval",
		"period_ms":  float64(1000),
		"sensor_pin": float64(pin),
	}
}

func TestIntervalEndToEnd(t *testing.T) {
	var records bytes.Buffer
	s, pins, obs := newTestService(t, &records)

	s.applyConfig(intervalConfig(16))
	pin, ok := pins.Pin(16)
	if !ok {
		t.Fatal("sensor not attached to pin 16")
	}

	repSub := obs.Subscribe(bus.T("wheel", "report"))
	defer obs.Unsubscribe(repSub)

	// Edges at 100 and 400, boundary at 1000; edges at 1200 and 1800,
	// boundary at 2000.
	pin.Pulse()
	pin.Pulse()
	s.tick(500) // not due yet
	s.tick(1000)
	pin.Pulse()
	pin.Pulse()
	s.tick(2000)

	if got, want := records.String(), "1.00,2\n2.00,2\n"; got != want {
		t.Errorf("records = %q, want %q", got, want)
	}

	for _, want := range []uint32{2, 2} {
		select {
		case msg := <-repSub.Channel():
			rec, ok := msg.Payload.(types.ReportRecord)
			if !ok {
				t.Fatalf("payload type %T", msg.Payload)
			}
			if rec.Count != want {
				t.Errorf("published count = %d, want %d", rec.Count, want)
			}
		default:
			t.Fatal("missing report on bus")
		}
	}
}

func TestCumulativeNoSerial(t *testing.T) {
	var records bytes.Buffer
	s, pins, _ := newTestService(t, &records)

	s.applyConfig(map[string]any{
		"mode":       "cumulative",
		"sensor_pin": float64(2),
	})
	pin, _ := pins.Pin(2)

	pin.Pulse()
	s.tick(1000)
	pin.Pulse()
	s.tick(2000)

	if records.Len() != 0 {
		t.Errorf("serial output in cumulative mode: %q", records.String())
	}
	if got := s.opts.Counter.Snapshot(); got != 2 {
		t.Errorf("counter = %d, want running total 2", got)
	}
}

func TestPeriodChangeResyncs(t *testing.T) {
	var records bytes.Buffer
	s, pins, _ := newTestService(t, &records)

	s.applyConfig(intervalConfig(5))
	pin, _ := pins.Pin(5)

	pin.Pulse()
	s.tick(1000)

	s.applyConfig(map[string]any{
		"mode":       "interval",
		"period_ms":  float64(2000),
		"sensor_pin": float64(5),
	})

	pin.Pulse()
	s.tick(1500) // old cadence would not fire anyway
	s.tick(2500) // new 2000ms cadence: not due until 2000 past last boundary
	if got := records.String(); got != "1.00,1\n" {
		t.Fatalf("records = %q before new boundary", got)
	}
	s.tick(3500)
	if got := records.String(); got != "1.00,1\n1.75,1\n" {
		t.Errorf("records = %q after new boundary", got)
	}
}

func TestPinChangeReattaches(t *testing.T) {
	var records bytes.Buffer
	s, pins, _ := newTestService(t, &records)

	s.applyConfig(intervalConfig(3))
	old, _ := pins.Pin(3)

	s.applyConfig(intervalConfig(4))
	neu, ok := pins.Pin(4)
	if !ok {
		t.Fatal("sensor not moved to pin 4")
	}

	old.Pulse() // detached, must not count
	neu.Pulse()
	s.tick(1000)
	if got := records.String(); got != "1.00,1\n" {
		t.Errorf("records = %q, want only the new pin counted", got)
	}
}

func TestBadConfigIgnored(t *testing.T) {
	var records bytes.Buffer
	s, _, _ := newTestService(t, &records)

	s.applyConfig("not a map")
	s.applyConfig(map[string]any{"mode": 42, "period_ms": "soon"})

	// Defaults still in force.
	if s.rep.Mode != types.ModeCumulative || s.rep.PeriodMs != types.DefaultPeriodMs {
		t.Errorf("mode=%v period=%d after bad config", s.rep.Mode, s.rep.PeriodMs)
	}
}
