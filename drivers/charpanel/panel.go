// drivers/charpanel/panel.go
package charpanel

import (
	"lostwheel-go/types"
	"lostwheel-go/x/conv"
	"lostwheel-go/x/mathx"
)

// TextDisplay is the subset of a character LCD the panel needs. The HD44780
// driver in tinygo.org/x/drivers satisfies it directly.
type TextDisplay interface {
	SetCursor(col, row uint8) error
	Print(data []byte) error
}

// Field geometry on a 16x2 module. Labels live on row 0, values on row 1,
// each value padded to its full field so stale digits never survive.
const (
	countCol   = 0
	countWidth = 7
	minuteCol  = 7
	minuteWid  = 9
)

// Panel renders counts (and, in interval mode, elapsed whole minutes) into
// fixed regions of a character display. It satisfies the reporter's panel
// contract; display errors are counted, never returned to the tick path.
type Panel struct {
	d     TextDisplay
	mode  types.ReportingMode
	errs  uint32
	buf   [20]byte
	field [minuteWid]byte
}

// New draws the static labels for the given mode and returns the panel.
func New(d TextDisplay, mode types.ReportingMode) (*Panel, error) {
	p := &Panel{d: d, mode: mode}
	var label string
	if mode == types.ModeInterval {
		label = "count  time(min)"
	} else {
		label = "clicks          "
	}
	if err := d.SetCursor(0, 0); err != nil {
		return nil, err
	}
	if err := d.Print([]byte(label)); err != nil {
		return nil, err
	}
	return p, nil
}

// ShowCount writes the count into its field on the value row.
func (p *Panel) ShowCount(c uint32) {
	p.write(countCol, countWidth, int64(c))
}

// ShowMinutes writes elapsed whole minutes. No-op in cumulative mode, where
// the field is not part of the layout.
func (p *Panel) ShowMinutes(m int64) {
	if p.mode != types.ModeInterval {
		return
	}
	p.write(minuteCol, minuteWid, m)
}

// Errs reports how many display writes have failed since boot.
func (p *Panel) Errs() uint32 { return p.errs }

func (p *Panel) write(col, width int, v int64) {
	v = mathx.Clamp(v, 0, pow10(width)-1)
	digits := conv.Utoa(p.buf[:], uint64(v))
	out := p.field[:width]
	n := copy(out, digits)
	for i := n; i < width; i++ {
		out[i] = ' '
	}
	if err := p.d.SetCursor(uint8(col), 1); err != nil {
		p.errs++
		return
	}
	if err := p.d.Print(out); err != nil {
		p.errs++
	}
}

func pow10(n int) int64 {
	v := int64(1)
	for ; n > 0; n-- {
		v *= 10
	}
	return v
}
