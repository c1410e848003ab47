package provision

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Prathmesh-K/SmartGlassesPi/errcode"
)

func writeBootFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write boot file: %v", err)
	}
	return path
}

func assertWakeLineCount(t *testing.T, path string, pin, want int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read boot file: %v", err)
	}
	count := 0
	for _, l := range strings.Split(string(data), "\n") {
		if l == BootWakeLine(pin) {
			count++
		}
	}
	if count != want {
		t.Fatalf("want %d %q lines, got %d in:\n%s", want, BootWakeLine(pin), count, data)
	}
}

func TestEnsureBootWakeEnabled_AppendsOnce(t *testing.T) {
	path := writeBootFile(t, "dtparam=audio=on\nenable_uart=1\n")

	if err := EnsureBootWakeEnabled(17, path); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	assertWakeLineCount(t, path, 17, 1)

	data, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(data), "WAKE_ON_GPIO=17\n") {
		t.Fatalf("line must be appended with trailing newline; got:\n%q", data)
	}
}

func TestEnsureBootWakeEnabled_Idempotent(t *testing.T) {
	path := writeBootFile(t, "dtparam=audio=on\n")

	for i := 0; i < 5; i++ {
		if err := EnsureBootWakeEnabled(17, path); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	assertWakeLineCount(t, path, 17, 1)
}

func TestEnsureBootWakeEnabled_ExistingLineLeavesFileByteIdentical(t *testing.T) {
	content := "dtparam=audio=on\nWAKE_ON_GPIO=17\nenable_uart=1\n"
	path := writeBootFile(t, content)

	before, _ := os.ReadFile(path)
	if err := EnsureBootWakeEnabled(17, path); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("file must be untouched when line exists:\nbefore %q\nafter  %q", before, after)
	}
}

func TestEnsureBootWakeEnabled_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.txt")

	err := EnsureBootWakeEnabled(17, path)
	if errcode.Of(err) != errcode.ConfigFileMissing {
		t.Fatalf("want config_file_missing, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatalf("upsert must never create the boot file")
	}
}

func TestEnsureBootWakeEnabled_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root; file modes are not enforced")
	}
	path := writeBootFile(t, "dtparam=audio=on\n")
	if err := os.Chmod(path, 0o444); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	before, _ := os.ReadFile(path)
	err := EnsureBootWakeEnabled(17, path)
	if errcode.Of(err) != errcode.PermissionDenied {
		t.Fatalf("want permission_denied, got %v", err)
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Fatalf("file must be unmodified on permission failure")
	}
}

func TestEnsureBootWakeEnabled_NoTrailingNewline(t *testing.T) {
	path := writeBootFile(t, "enable_uart=1")

	if err := EnsureBootWakeEnabled(17, path); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "enable_uart=1\nWAKE_ON_GPIO=17\n" {
		t.Fatalf("append must not glue onto the last line; got %q", data)
	}
}

func TestEnsureBootWakeEnabled_DistinctPinsBothKept(t *testing.T) {
	// A different pin's line is not "the" wake line; exact match only.
	path := writeBootFile(t, "WAKE_ON_GPIO=4\n")

	if err := EnsureBootWakeEnabled(17, path); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	assertWakeLineCount(t, path, 4, 1)
	assertWakeLineCount(t, path, 17, 1)
}

func TestEnsureBootWakeEnabled_InvalidPin(t *testing.T) {
	path := writeBootFile(t, "")
	if err := EnsureBootWakeEnabled(99, path); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("want invalid_params, got %v", err)
	}
}
