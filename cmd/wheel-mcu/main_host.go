// cmd/wheel-mcu/main_host.go
//go:build !tinygo

package main

// Firmware image; build with tinygo for an RP2 target.
func main() {
	println("wheel-mcu is a TinyGo firmware target; build with tinygo flash -target=pico")
}
