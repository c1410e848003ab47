package provision

import (
	"errors"
	"testing"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
	"github.com/Prathmesh-K/SmartGlassesPi/services/hal"
)

// ---- fakes ----

type fakeController struct {
	dirs   map[int]hal.Direction
	pulls  map[int]hal.Pull
	levels map[int]bool
	calls  int
	err    error
}

func newFakeController() *fakeController {
	return &fakeController{
		dirs:   map[int]hal.Direction{},
		pulls:  map[int]hal.Pull{},
		levels: map[int]bool{},
	}
}

func (c *fakeController) SetDirection(pin int, dir hal.Direction) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	c.dirs[pin] = dir
	return nil
}

func (c *fakeController) SetBias(pin int, pull hal.Pull) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	c.pulls[pin] = pull
	return nil
}

func (c *fakeController) SetLevel(pin int, high bool) error {
	c.calls++
	if c.err != nil {
		return c.err
	}
	c.levels[pin] = high
	return nil
}

// ---- tests ----

func TestConfigureWakePin(t *testing.T) {
	fc := newFakeController()
	if err := ConfigureWakePin(fc, 17); err != nil {
		t.Fatalf("ConfigureWakePin: %v", err)
	}
	if fc.dirs[17] != hal.Input {
		t.Fatalf("wake pin not input; got %v", fc.dirs[17])
	}
	if fc.pulls[17] != hal.PullDown {
		t.Fatalf("wake pin not pull-down; got %v", fc.pulls[17])
	}
}

func TestConfigureSignalPin(t *testing.T) {
	fc := newFakeController()
	if err := ConfigureSignalPin(fc, 27); err != nil {
		t.Fatalf("ConfigureSignalPin: %v", err)
	}
	if fc.dirs[27] != hal.Output {
		t.Fatalf("signal pin not output; got %v", fc.dirs[27])
	}
	if high, ok := fc.levels[27]; !ok || high {
		t.Fatalf("signal pin must be driven low initially; got %v (set=%v)", high, ok)
	}
}

func TestConfigurePins_OutOfRange(t *testing.T) {
	for _, pin := range []int{-1, 28, 500} {
		fc := newFakeController()
		if err := ConfigureWakePin(fc, pin); errcode.Of(err) != errcode.HardwareConfig {
			t.Fatalf("wake pin %d: want hardware_config, got %v", pin, err)
		}
		if err := ConfigureSignalPin(fc, pin); errcode.Of(err) != errcode.HardwareConfig {
			t.Fatalf("signal pin %d: want hardware_config, got %v", pin, err)
		}
		if fc.calls != 0 {
			t.Fatalf("pin %d: no hardware call may happen for invalid pins; got %d", pin, fc.calls)
		}
	}
}

func TestConfigureWakePin_ControllerFailureAborts(t *testing.T) {
	fc := newFakeController()
	fc.err = errors.New("tool rejected pin")
	if err := ConfigureWakePin(fc, 17); err == nil {
		t.Fatalf("expected controller failure to propagate")
	}
	// The first failing call stops the sequence.
	if fc.calls != 1 {
		t.Fatalf("expected abort after first call, got %d calls", fc.calls)
	}
}

func TestApply_RunsPinsAndBootUpsert(t *testing.T) {
	fc := newFakeController()
	path := writeBootFile(t, "dtparam=audio=on\n")

	p := Params{WakePin: 17, SignalPin: 27, BootConfigPath: path}
	if err := Apply(fc, p); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if fc.dirs[17] != hal.Input || fc.dirs[27] != hal.Output {
		t.Fatalf("pins not configured: %v", fc.dirs)
	}
	assertWakeLineCount(t, path, 17, 1)

	// Whole pass is idempotent.
	if err := Apply(fc, p); err != nil {
		t.Fatalf("second Apply: %v", err)
	}
	assertWakeLineCount(t, path, 17, 1)
}
