// services/controller/controller.go
//
// Instruction listener for the PSOC6 co-processor link. The co-processor
// writes short ASCII instructions over UART; the listener blocks on the port
// and dispatches them. Provisioning runs before listening so the wake
// handshake is in place whenever the host is told to sleep.
package controller

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Instructions accepted on the serial link.
const (
	InstrSleep   = "SLEEP"
	InstrCapture = "CAPTURE"
)

// DefaultSerialPort is the Pi's primary UART device. The link runs at
// 115200 baud, configured by the OS serial setup.
const DefaultSerialPort = "/dev/serial0"

// Runner is the pipeline subset the controller drives.
type Runner interface {
	CaptureAndSpeak(ctx context.Context) (photoPath string, err error)
}

// Controller reads instructions from the serial port.
type Controller struct {
	port io.Reader
	run  Runner

	suspend func(ctx context.Context) error
}

func New(port io.Reader, run Runner) *Controller {
	return &Controller{port: port, run: run, suspend: suspendHost}
}

// OpenPort opens the serial device. The UART itself is configured by the OS;
// no line-discipline handling here.
func OpenPort(path string) (io.ReadCloser, error) {
	if path == "" {
		path = DefaultSerialPort
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("controller: open serial port: %w", err)
	}
	return f, nil
}

// Listen blocks, reading whitespace-delimited instructions until the port
// closes or the context is cancelled. Unknown instructions are logged and
// skipped so new co-processor firmware cannot wedge the listener.
func (c *Controller) Listen(ctx context.Context) error {
	scanner := bufio.NewScanner(c.port)
	scanner.Split(bufio.ScanWords)

	slog.Info("instruction listener started")
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		instr := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if instr == "" {
			continue
		}
		c.dispatch(ctx, instr)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("controller: serial read: %w", err)
	}
	return ctx.Err()
}

func (c *Controller) dispatch(ctx context.Context, instr string) {
	slog.Info("instruction received", "instruction", instr)
	switch instr {
	case InstrSleep:
		if err := c.suspend(ctx); err != nil {
			slog.Error("suspend failed", "error", err)
		}
	case InstrCapture:
		photo, err := c.run.CaptureAndSpeak(ctx)
		if err != nil {
			slog.Error("capture failed", "error", err)
			return
		}
		slog.Info("capture complete", "photo", photo)
	default:
		slog.Warn("unknown instruction", "instruction", instr)
	}
}

func suspendHost(ctx context.Context) error {
	return exec.CommandContext(ctx, "systemctl", "suspend").Run()
}
