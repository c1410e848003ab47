// boot-gpio-setup is the stand-alone provisioning binary, meant to be invoked
// once at system setup (typically via sudo from a systemd oneshot unit). It
// takes no flags; pins and paths come from smartglasses.yaml or environment
// overrides. Exit code 0 on success, non-zero on any hardware-configuration
// or file-permission failure.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/Prathmesh-K/SmartGlassesPi/config"
	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
	"github.com/Prathmesh-K/SmartGlassesPi/services/provision"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		// Propagate the pin-control tool's own exit status when it is
		// the thing that failed.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctrl, err := hal.NewPinctrlController(cfg.Gpio.PinctrlCommand)
	if err != nil {
		return err
	}
	p := provision.Params{
		WakePin:        cfg.Gpio.WakePin,
		SignalPin:      cfg.Gpio.SignalPin,
		BootConfigPath: cfg.Gpio.BootConfigPath,
	}
	if err := provision.Apply(ctrl, p); err != nil {
		return err
	}
	fmt.Printf("wake pin %d configured (input, pull-down)\n", p.WakePin)
	fmt.Printf("signal pin %d configured (output, low)\n", p.SignalPin)
	fmt.Printf("%s ensured in %s\n", provision.BootWakeLine(p.WakePin), p.BootConfigPath)
	return nil
}
