//go:build !tinygo

package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"lostwheel-go/bus"
	"lostwheel-go/drivers/hallsensor"
	"lostwheel-go/services/config"
	"lostwheel-go/services/wheelmeter"
	"lostwheel-go/wheel"
	"lostwheel-go/x/timex"
)

// Bench simulator: the real bus, config service and wheelmeter pipeline,
// with a simulated hall pin pulsed at a steady pace and records printed to
// stdout. Useful for eyeballing the record stream without hardware.
func main() {
	println("lostwheel sim: ctrl-c to stop")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx = context.WithValue(ctx, config.CtxDeviceKey, "lostwheel-interval")

	b := bus.NewBus(8)
	pins := hallsensor.NewSimFactory()
	uptime := timex.StartUptime()

	var counter wheel.Counter
	svc := wheelmeter.New(wheelmeter.Options{
		Conn:    b.NewConnection("wheelmeter"),
		Counter: &counter,
		Pins:    pins,
		Records: os.Stdout,
		Now:     uptime.Ms,
		PollMs:  10,
	})

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	svc.Start(ctx)

	// Wheel spinning at roughly 3 revolutions per second on the profile's
	// configured pin.
	go func() {
		tick := time.NewTicker(333 * time.Millisecond)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				if p, ok := pins.Pin(16); ok {
					p.Pulse()
				}
			}
		}
	}()

	<-ctx.Done()
	println("sim stopped")
}
