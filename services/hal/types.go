// services/hal/types.go
package hal

// ---- GPIO abstractions ----

// Pull selects the bias resistor for an input pin.
type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Direction selects whether a pin is driven or read.
type Direction uint8

const (
	Input Direction = iota
	Output
)

// Controller abstracts the pin-control utility so provisioning code can run
// against a fake instead of physical hardware.
type Controller interface {
	SetDirection(pin int, dir Direction) error
	SetBias(pin int, pull Pull) error
	SetLevel(pin int, high bool) error
}

// BCM header GPIO range on the Raspberry Pi.
const (
	MinPin = 0
	MaxPin = 27
)

// ValidPin reports whether n is a usable header GPIO number.
func ValidPin(n int) bool { return n >= MinPin && n <= MaxPin }
