// cmd/wheel-mcu/main.go
//go:build tinygo

package main

import (
	"context"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"lostwheel-go/bus"
	"lostwheel-go/drivers/charpanel"
	"lostwheel-go/drivers/hallsensor"
	"lostwheel-go/drivers/lockservo"
	"lostwheel-go/services/config"
	"lostwheel-go/services/wheelmeter"
	"lostwheel-go/types"
	"lostwheel-go/wheel"
	"lostwheel-go/x/timex"
)

// Device profile baked into this image. Flash the cumulative variant by
// changing this constant.
const deviceProfile = "lostwheel-interval"

// Latch servo: GP15 sits on PWM7 channel B.
const lockPin = machine.GP15

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot:", deviceProfile)

	b := bus.NewBus(8)
	ctx := context.WithValue(context.Background(), config.CtxDeviceKey, deviceProfile)

	// Record sink on UART0, board-default pins.
	u := uartx.UART0
	u.Configure(uartx.UARTConfig{
		BaudRate: types.DefaultBaud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	var panel wheel.Panel
	if d, err := charpanel.OpenHD44780(types.DefaultLCDAddr); err != nil {
		println("Error: lcd init:", err.Error())
	} else if p, err := charpanel.New(d, types.ParseReportingMode(profileMode())); err != nil {
		println("Error: lcd layout:", err.Error())
	} else {
		panel = p
	}

	// Park the door latch open. Nothing schedules it after boot.
	if act, err := lockservo.OpenServo(machine.PWM7, lockPin); err != nil {
		println("Error: lock servo:", err.Error())
	} else if _, err := lockservo.New(act); err != nil {
		println("Error: lock park:", err.Error())
	}

	uptime := timex.StartUptime()
	var counter wheel.Counter
	svc := wheelmeter.New(wheelmeter.Options{
		Conn:    b.NewConnection("wheelmeter"),
		Counter: &counter,
		Pins:    hallsensor.RP2PinFactory(),
		Panel:   panel,
		Records: u,
		Now:     uptime.Ms,
	})

	config.NewConfigService().Start(ctx, b.NewConnection("config"))
	svc.Start(ctx)

	select {}
}

func profileMode() string {
	if deviceProfile == "lostwheel-cumulative" {
		return "cumulative"
	}
	return "interval"
}
