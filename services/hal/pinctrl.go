// services/hal/pinctrl.go
package hal

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

// DefaultPinctrlCommand is the stock pin-control utility on Raspberry Pi OS.
const DefaultPinctrlCommand = "pinctrl"

type runner interface {
	Run(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// PinctrlController drives pins through the pinctrl command-line tool.
// The command string may carry a prefix such as "sudo pinctrl"; it is split
// with shell-style quoting.
type PinctrlController struct {
	argv []string
	run  runner
}

// NewPinctrlController resolves the pin-control utility up front so a missing
// tool fails provisioning before any register is touched.
func NewPinctrlController(command string) (*PinctrlController, error) {
	if command == "" {
		command = DefaultPinctrlCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, errcode.New(errcode.HardwareConfig, "hal.pinctrl", err)
	}
	if len(argv) == 0 {
		return nil, errcode.Newf(errcode.HardwareConfig, "hal.pinctrl", "empty pin-control command")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, errcode.New(errcode.HardwareConfig, "hal.pinctrl", err)
	}
	return &PinctrlController{argv: argv, run: execRunner{}}, nil
}

func (c *PinctrlController) set(pin int, arg string) error {
	if !ValidPin(pin) {
		return errcode.Newf(errcode.HardwareConfig, "hal.pinctrl", "pin "+strconv.Itoa(pin)+" out of range")
	}
	args := append(append([]string(nil), c.argv[1:]...), "set", strconv.Itoa(pin), arg)
	if err := c.run.Run(c.argv[0], args...); err != nil {
		return errcode.New(errcode.HardwareConfig, "hal.pinctrl", err)
	}
	return nil
}

func (c *PinctrlController) SetDirection(pin int, dir Direction) error {
	if dir == Output {
		return c.set(pin, "op")
	}
	return c.set(pin, "ip")
}

func (c *PinctrlController) SetBias(pin int, pull Pull) error {
	switch pull {
	case PullUp:
		return c.set(pin, "pu")
	case PullDown:
		return c.set(pin, "pd")
	default:
		return c.set(pin, "pn")
	}
}

func (c *PinctrlController) SetLevel(pin int, high bool) error {
	if high {
		return c.set(pin, "dh")
	}
	return c.set(pin, "dl")
}
