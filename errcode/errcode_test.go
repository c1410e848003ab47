package errcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestOf_BareCode(t *testing.T) {
	if got := Of(HardwareConfig); got != HardwareConfig {
		t.Fatalf("Of(bare code) got %v", got)
	}
	if got := Of(nil); got != OK {
		t.Fatalf("Of(nil) got %v", got)
	}
	if got := Of(errors.New("boom")); got != Error {
		t.Fatalf("Of(plain error) got %v", got)
	}
}

func TestOf_Wrapped(t *testing.T) {
	e := New(CameraUnavailable, "camera.capture", errors.New("no sensor"))
	if got := Of(e); got != CameraUnavailable {
		t.Fatalf("Of(*E) got %v", got)
	}
	// A further fmt wrap should still resolve through Unwrap.
	outer := fmt.Errorf("pipeline: %w", e)
	if got := Of(outer); got != CameraUnavailable {
		t.Fatalf("Of(wrapped *E) got %v", got)
	}
}

func TestE_ErrorString(t *testing.T) {
	e := &E{C: PermissionDenied, Op: "bootcfg.upsert", Msg: "read-only"}
	want := "bootcfg.upsert: permission_denied: read-only"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestIs(t *testing.T) {
	e := Newf(ConfigFileMissing, "bootcfg", "/boot/firmware/config.txt")
	if !Is(e, ConfigFileMissing) {
		t.Fatalf("Is should match the carried code")
	}
	if Is(e, PermissionDenied) {
		t.Fatalf("Is matched the wrong code")
	}
}
