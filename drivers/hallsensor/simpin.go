// drivers/hallsensor/simpin.go
//go:build !tinygo

package hallsensor

// SimPin is a host-side pin whose edges are driven from test or simulator
// code. Level starts high (pulled up, magnet away).
type SimPin struct {
	n       int
	level   bool
	edge    Edge
	handler func()
}

// SimFactory hands out SimPins and remembers them so the driver code can
// fire edges on whatever the service attached to.
type SimFactory struct {
	pins map[int]*SimPin
}

func NewSimFactory() *SimFactory {
	return &SimFactory{pins: make(map[int]*SimPin)}
}

func (f *SimFactory) ByNumber(n int) (IRQPin, bool) {
	if n < 0 {
		return nil, false
	}
	p, ok := f.pins[n]
	if !ok {
		p = &SimPin{n: n, level: true}
		f.pins[n] = p
	}
	return p, true
}

// Pin returns the sim pin for n if one has been handed out.
func (f *SimFactory) Pin(n int) (*SimPin, bool) {
	p, ok := f.pins[n]
	return p, ok
}

func (p *SimPin) ConfigureInput(pull Pull) error {
	p.level = pull != PullDown
	return nil
}

func (p *SimPin) Get() bool   { return p.level }
func (p *SimPin) Number() int { return p.n }

func (p *SimPin) SetIRQ(edge Edge, handler func()) error {
	p.edge = edge
	p.handler = handler
	return nil
}

func (p *SimPin) ClearIRQ() error {
	p.edge = EdgeNone
	p.handler = nil
	return nil
}

// Drive sets the level and fires the handler when the transition matches the
// armed edge.
func (p *SimPin) Drive(level bool) {
	if level == p.level {
		return
	}
	prev := p.level
	p.level = level
	if p.handler == nil {
		return
	}
	rising := !prev && level
	switch p.edge {
	case EdgeRising:
		if rising {
			p.handler()
		}
	case EdgeFalling:
		if !rising {
			p.handler()
		}
	case EdgeBoth:
		p.handler()
	}
}

// Pulse drives one full low pulse: falling then rising edge.
func (p *SimPin) Pulse() {
	p.Drive(false)
	p.Drive(true)
}
