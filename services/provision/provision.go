// services/provision/provision.go
//
// One-shot provisioning for the smart-glasses wake handshake: bring the wake
// and co-processor signal pins into a known electrical state and make sure
// the bootloader wakes the Pi on the wake pin. Re-running the whole thing is
// a safe no-op once applied.
package provision

import (
	"strconv"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
)

// Placeholder wiring; replace with the real header pins when the harness is
// finalised.
const (
	DefaultWakePin   = 17
	DefaultSignalPin = 27
)

// DefaultBootConfigPath is where Raspberry Pi OS keeps the bootloader config.
const DefaultBootConfigPath = "/boot/firmware/config.txt"

// Params carries the provisioning inputs. The boot config path is explicit so
// tests and other distros do not depend on the well-known location.
type Params struct {
	WakePin        int
	SignalPin      int
	BootConfigPath string
}

// ConfigureWakePin sets the pin as input with pull-down bias so it reads low
// at rest and high on an external wake signal.
func ConfigureWakePin(ctrl hal.Controller, pin int) error {
	if !hal.ValidPin(pin) {
		return errcode.Newf(errcode.HardwareConfig, "provision.wake_pin", "pin "+strconv.Itoa(pin)+" out of range")
	}
	if err := ctrl.SetDirection(pin, hal.Input); err != nil {
		return err
	}
	return ctrl.SetBias(pin, hal.PullDown)
}

// ConfigureSignalPin sets the pin as output, initial level low. The line is
// later driven high to signal the PSOC6 co-processor; raising it is a manual
// follow-up step, deliberately not automated until the handshake protocol is
// confirmed with the hardware owner.
func ConfigureSignalPin(ctrl hal.Controller, pin int) error {
	if !hal.ValidPin(pin) {
		return errcode.Newf(errcode.HardwareConfig, "provision.signal_pin", "pin "+strconv.Itoa(pin)+" out of range")
	}
	if err := ctrl.SetDirection(pin, hal.Output); err != nil {
		return err
	}
	return ctrl.SetLevel(pin, false)
}

// Apply runs the full provisioning pass: both pins plus the boot-config
// upsert. Pin state and boot file are independent; both must be in place
// before the next power-cycle for wake to take effect. Any failure aborts
// immediately rather than continuing into an inconsistent state.
func Apply(ctrl hal.Controller, p Params) error {
	if err := ConfigureWakePin(ctrl, p.WakePin); err != nil {
		return err
	}
	if err := ConfigureSignalPin(ctrl, p.SignalPin); err != nil {
		return err
	}
	return EnsureBootWakeEnabled(p.WakePin, p.BootConfigPath)
}
