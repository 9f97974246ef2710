// host/acquire/acquire.go
package acquire

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"

	"lostwheel-go/wheel"
)

// Measurement is one parsed record off the wire, stamped with host receive
// time. Elapsed is in periods, as the device emits it.
type Measurement struct {
	At      time.Time
	Elapsed float64
	Count   uint32
}

// OpenPort opens the device's serial port at the given baud rate.
func OpenPort(name string, baud int) (io.ReadCloser, error) {
	return serial.Open(name, &serial.Mode{BaudRate: baud})
}

// Acquirer turns the device's line stream into Measurements. Lines that do
// not parse are logged and dropped; the stream keeps going.
type Acquirer struct {
	r        io.ReadCloser
	log      zerolog.Logger
	out      chan Measurement
	now      func() time.Time
	badLines uint64
}

func New(r io.ReadCloser, log zerolog.Logger) *Acquirer {
	return &Acquirer{
		r:   r,
		log: log,
		out: make(chan Measurement, 64),
		now: time.Now,
	}
}

// Measurements is the output stream. It is closed when Run returns.
func (a *Acquirer) Measurements() <-chan Measurement { return a.out }

// BadLines reports how many lines failed to parse. Only meaningful after
// Run has returned.
func (a *Acquirer) BadLines() uint64 { return a.badLines }

// Run reads lines until the port closes or ctx is cancelled. Cancellation
// closes the port to unblock the pending read.
func (a *Acquirer) Run(ctx context.Context) error {
	defer close(a.out)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.r.Close()
		case <-done:
		}
	}()

	sc := bufio.NewScanner(a.r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		elapsed, count, err := wheel.ParseRecord(line)
		if err != nil {
			a.badLines++
			a.log.Warn().Str("line", line).Err(err).Msg("dropping unparseable record")
			continue
		}
		m := Measurement{At: a.now(), Elapsed: elapsed, Count: count}
		a.log.Debug().Float64("elapsed", elapsed).Uint32("count", count).Msg("record")
		select {
		case a.out <- m:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}
