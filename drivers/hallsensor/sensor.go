// drivers/hallsensor/sensor.go
package hallsensor

import (
	"lostwheel-go/errcode"
	"lostwheel-go/wheel"
)

// Sensor binds a hall-effect switch on a GPIO to a wheel counter. The magnet
// pulls the open-drain output low once per revolution, so we count falling
// edges with the input biased high.
type Sensor struct {
	pin     IRQPin
	counter *wheel.Counter
}

// Attach configures the pin as a pulled-up input and arms the falling-edge
// interrupt. The ISR does nothing but bump the counter.
func Attach(pins PinFactory, number int, c *wheel.Counter) (*Sensor, error) {
	const op = "hallsensor.Attach"
	p, ok := pins.ByNumber(number)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: op, Msg: "no such pin"}
	}
	if err := p.ConfigureInput(PullUp); err != nil {
		return nil, &errcode.E{C: errcode.PinInUse, Op: op, Err: err}
	}
	if err := p.SetIRQ(EdgeFalling, c.Bump); err != nil {
		return nil, &errcode.E{C: errcode.PinInUse, Op: op, Err: err}
	}
	return &Sensor{pin: p, counter: c}, nil
}

// Detach disarms the interrupt. The counter keeps its value.
func (s *Sensor) Detach() error {
	if s.pin == nil {
		return nil
	}
	err := s.pin.ClearIRQ()
	s.pin = nil
	return err
}

// Pin reports the GPIO number the sensor is attached to, or -1 when detached.
func (s *Sensor) Pin() int {
	if s.pin == nil {
		return -1
	}
	return s.pin.Number()
}
