// drivers/hallsensor/pin.go
package hallsensor

// Pull selects the input bias for a sensor pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// Pin is the minimal GPIO surface the sensor needs.
type Pin interface {
	ConfigureInput(pull Pull) error
	Get() bool
	Number() int
}

// IRQPin extends Pin with edge interrupts. The handler runs in interrupt
// context on MCU builds: it must not block, allocate, or touch the bus.
type IRQPin interface {
	Pin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}

// PinFactory supplies pins by the configured number scheme.
type PinFactory interface {
	ByNumber(n int) (IRQPin, bool)
}
