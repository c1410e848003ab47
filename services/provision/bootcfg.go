// services/provision/bootcfg.go
package provision

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
)

// BootWakeKey is the bootloader setting that arms wake-on-GPIO.
const BootWakeKey = "WAKE_ON_GPIO"

// BootWakeLine renders the exact config line for a pin.
func BootWakeLine(pin int) string {
	return BootWakeKey + "=" + strconv.Itoa(pin)
}

// EnsureBootWakeEnabled upserts `WAKE_ON_GPIO=<pin>` into the bootloader
// config file. The file is owned by the bootloader: if it is absent that is
// an error, never an invitation to create it. An exclusive flock covers the
// whole read-check-append sequence so concurrent provisioning runs cannot
// duplicate the line. When the line is already present the file is left
// byte-identical.
func EnsureBootWakeEnabled(pin int, bootConfigPath string) error {
	const op = "provision.boot_wake"

	if !hal.ValidPin(pin) {
		return errcode.Newf(errcode.InvalidParams, op, "pin "+strconv.Itoa(pin)+" out of range")
	}

	f, err := os.OpenFile(bootConfigPath, os.O_RDWR, 0)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return errcode.New(errcode.ConfigFileMissing, op, err)
		case errors.Is(err, fs.ErrPermission):
			return errcode.New(errcode.PermissionDenied, op, err)
		default:
			return errcode.New(errcode.Error, op, err)
		}
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return errcode.New(errcode.Error, op, err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	data, err := io.ReadAll(f)
	if err != nil {
		return errcode.New(errcode.Error, op, err)
	}

	line := BootWakeLine(pin)
	if hasExactLine(data, line) {
		return nil
	}

	// Single write of the whole suffix; no partial state on failure paths
	// before this point.
	var suffix []byte
	if len(data) > 0 && data[len(data)-1] != '\n' {
		suffix = append(suffix, '\n')
	}
	suffix = append(suffix, line...)
	suffix = append(suffix, '\n')

	if _, err := f.Write(suffix); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return errcode.New(errcode.PermissionDenied, op, err)
		}
		return errcode.New(errcode.Error, op, err)
	}
	return nil
}

// hasExactLine reports whether data contains a line exactly equal to want.
// A trailing carriage return is tolerated for files edited on other hosts.
func hasExactLine(data []byte, want string) bool {
	for _, l := range strings.Split(string(data), "\n") {
		l = strings.TrimSuffix(l, "\r")
		if l == want {
			return true
		}
	}
	return false
}
