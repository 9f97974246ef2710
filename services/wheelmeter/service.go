// services/wheelmeter/service.go
package wheelmeter

import (
	"context"
	"io"
	"time"

	"lostwheel-go/bus"
	"lostwheel-go/drivers/hallsensor"
	"lostwheel-go/errcode"
	"lostwheel-go/types"
	"lostwheel-go/wheel"
)

var (
	topicConfigWheel = bus.T("config", "wheel")
	topicReport      = bus.T("wheel", "report")
	topicError       = bus.T("wheel", "error")
)

// Options wires the service to its collaborators. Conn, Counter and Pins are
// required; Panel and Records may be nil when the build has no display or no
// serial sink.
type Options struct {
	Conn    *bus.Connection
	Counter *wheel.Counter
	Pins    hallsensor.PinFactory
	Panel   wheel.Panel
	Records io.Writer
	Now     func() int64 // monotonic milliseconds
	PollMs  int
}

// Service owns the reporting cadence: it polls the clock, fires the reporter
// on period boundaries, publishes each record on the bus, and reshapes itself
// when a retained config document arrives.
type Service struct {
	opts    Options
	rep     *wheel.Reporter
	sched   *wheel.Scheduler
	sensor  *hallsensor.Sensor
	pin     int
	startMs int64
}

func New(opts Options) *Service {
	if opts.Now == nil {
		opts.Now = func() int64 { return time.Now().UnixMilli() }
	}
	if opts.PollMs <= 0 {
		opts.PollMs = types.DefaultPollMs
	}
	return &Service{
		opts: opts,
		pin:  -1,
		rep: &wheel.Reporter{
			Mode:     types.ModeCumulative,
			PeriodMs: types.DefaultPeriodMs,
			Counter:  opts.Counter,
			Panel:    opts.Panel,
			Records:  opts.Records,
		},
		sched: wheel.NewScheduler(types.DefaultPeriodMs),
	}
}

// Start runs the service loop until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	go s.serviceLoop(ctx)
	return nil
}

func (s *Service) serviceLoop(ctx context.Context) {
	cfgSub := s.opts.Conn.Subscribe(topicConfigWheel)
	defer s.opts.Conn.Unsubscribe(cfgSub)

	s.startMs = s.opts.Now()
	tick := time.NewTicker(time.Duration(s.opts.PollMs) * time.Millisecond)
	defer tick.Stop()
	defer s.detach()

	for {
		select {
		case <-ctx.Done():
			println("Info: wheelmeter service stopping")
			return
		case <-tick.C:
			s.tick(s.opts.Now())
		case msg := <-cfgSub.Channel():
			s.applyConfig(msg.Payload)
		}
	}
}

// tick fires the reporter when a period boundary has passed. Deferred edges
// land in the next interval: the counter is only read inside Report.
func (s *Service) tick(nowMs int64) {
	if !s.sched.Due(nowMs) {
		return
	}
	rec := s.rep.Report(nowMs - s.startMs)
	s.opts.Conn.Publish(s.opts.Conn.NewMessage(topicReport, rec, false))
}

// applyConfig reshapes the reporter and sensor from a config document. The
// payload is the decoded JSON map the config service publishes retained.
func (s *Service) applyConfig(payload any) {
	m, ok := payload.(map[string]any)
	if !ok {
		// Keep running on compiled defaults; flag the bad document.
		println("Warn: wheelmeter: config payload is not a map")
		s.opts.Conn.Publish(s.opts.Conn.NewMessage(topicError, errcode.InvalidPayload, false))
		return
	}
	cfg := decodeConfig(m)
	mode := cfg.Normalize()

	s.rep.Mode = mode
	if cfg.PeriodMs != s.rep.PeriodMs {
		s.rep.PeriodMs = cfg.PeriodMs
		s.sched.SetPeriod(cfg.PeriodMs)
	}

	if cfg.SensorPin != s.pin {
		s.detach()
		if cfg.SensorPin >= 0 && s.opts.Pins != nil {
			sensor, err := hallsensor.Attach(s.opts.Pins, cfg.SensorPin, s.opts.Counter)
			if err != nil {
				println("Error: wheelmeter: attach sensor:", err.Error())
				s.opts.Conn.Publish(s.opts.Conn.NewMessage(topicError, errcode.Of(err), false))
				return
			}
			s.sensor = sensor
			s.pin = cfg.SensorPin
		}
	}
}

func (s *Service) detach() {
	if s.sensor != nil {
		_ = s.sensor.Detach()
		s.sensor = nil
		s.pin = -1
	}
}

// decodeConfig lifts the generic JSON map into a WheelConfig. Absent fields
// stay zero and get defaulted by Normalize.
func decodeConfig(m map[string]any) types.WheelConfig {
	cfg := types.WheelConfig{SensorPin: -1}
	if v, ok := m["mode"].(string); ok {
		cfg.Mode = v
	}
	if v, ok := num(m["period_ms"]); ok {
		cfg.PeriodMs = v
	}
	if v, ok := num(m["sensor_pin"]); ok {
		cfg.SensorPin = int(v)
	}
	if v, ok := num(m["poll_ms"]); ok {
		cfg.PollMs = int(v)
	}
	if v, ok := num(m["lcd_addr"]); ok {
		cfg.LCDAddr = uint8(v)
	}
	if v, ok := num(m["baud"]); ok {
		cfg.Baud = uint32(v)
	}
	return cfg
}

// num accepts the numeric shapes different JSON decoders produce.
func num(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case uint64:
		return int64(n), true
	}
	return 0, false
}
