// drivers/charpanel/panel_mcu.go
//go:build tinygo

package charpanel

import (
	"machine"

	"tinygo.org/x/drivers/hd44780i2c"
)

// OpenHD44780 configures i2c0 on the board-default pins and brings up a
// 16x2 HD44780 behind a PCF8574 backpack at addr.
func OpenHD44780(addr uint8) (TextDisplay, error) {
	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 100 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		return nil, err
	}
	d := hd44780i2c.New(bus, addr)
	if err := d.Configure(hd44780i2c.Config{Width: 16, Height: 2}); err != nil {
		return nil, err
	}
	return &d, nil
}
