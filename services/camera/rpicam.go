// services/camera/rpicam.go
package camera

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

// DefaultCaptureCommand is the stock still-capture tool on Raspberry Pi OS.
const DefaultCaptureCommand = "rpicam-still"

// Sensor warm-up before the shot, in milliseconds.
const warmupMS = 1000

// RpicamStill captures stills through the rpicam-still command-line tool.
type RpicamStill struct {
	argv []string
	run  func(ctx context.Context, name string, args ...string) error
}

// NewRpicamStill resolves the capture tool up front; a missing tool means the
// sensor cannot be opened.
func NewRpicamStill(command string) (*RpicamStill, error) {
	const op = "camera.rpicam"

	if command == "" {
		command = DefaultCaptureCommand
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, errcode.New(errcode.CameraUnavailable, op, err)
	}
	if len(argv) == 0 {
		return nil, errcode.Newf(errcode.CameraUnavailable, op, "empty capture command")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, errcode.New(errcode.CameraUnavailable, op, err)
	}
	return &RpicamStill{argv: argv, run: runCommand}, nil
}

func (c *RpicamStill) Capture(ctx context.Context, outputPath string) error {
	args := append(append([]string(nil), c.argv[1:]...),
		"--nopreview",
		"--timeout", strconv.Itoa(warmupMS),
		"--width", strconv.Itoa(CaptureWidth),
		"--height", strconv.Itoa(CaptureHeight),
		"--output", outputPath,
	)
	return c.run(ctx, c.argv[0], args...)
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
