// drivers/lockservo/lock_mcu.go
//go:build tinygo

package lockservo

import (
	"machine"

	"tinygo.org/x/drivers/servo"
)

// OpenServo binds a hobby servo on pin to the given PWM group.
func OpenServo(pwm servo.PWM, pin machine.Pin) (Actuator, error) {
	s, err := servo.New(pwm, pin)
	if err != nil {
		return nil, err
	}
	return s, nil
}
