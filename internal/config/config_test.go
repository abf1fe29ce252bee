// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testYAML = `
gantry:
  axes:
    - id: X
      port: /dev/ttyUSB0
      baud: 19200
      timeout_ms: 250
      min_firmware: ">= 3.0"
      homing:
        poll_ms: 50
        timeout_ms: 30000
    - id: y
      port: /dev/ttyUSB1
`

func TestLoadValidateNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gantry.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load err=%v", err)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate err=%v", err)
	}
	Normalize(cfg)

	x, ok := cfg.Axis("x")
	if !ok {
		t.Fatalf("axis x not found")
	}
	lc := x.Link()
	if lc.Port != "/dev/ttyUSB0" || lc.Baud != 19200 || lc.Timeout != 250*time.Millisecond {
		t.Fatalf("unexpected link config: %+v", lc)
	}
	if lc.Backend != "bugst" {
		t.Fatalf("backend default not applied: %q", lc.Backend)
	}
	if x.HomingInterval() != 50*time.Millisecond || x.HomingTimeout() != 30*time.Second {
		t.Fatalf("unexpected homing: %+v", x.Homing)
	}

	y, _ := cfg.Axis("Y")
	if y.Baud != DefaultBaud || y.TimeoutMs != DefaultTimeoutMs || y.Homing.PollMs != DefaultPollMs {
		t.Fatalf("defaults not applied: %+v", y)
	}
	if y.HomingTimeout() != 0 {
		t.Fatalf("homing timeout should stay unbounded, got %v", y.HomingTimeout())
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("gantry: [")); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestParse_RejectsUnknownKey(t *testing.T) {
	cases := []string{
		"gantry:\n  axes:\n    - id: x\n      port: /dev/ttyUSB0\n      homing_timeout_ms: 5000\n",
		"gantry:\n  axes:\n    - id: x\n      port: /dev/ttyUSB0\n      homing:\n        timeout: 5000\n",
		"gantry:\n  axis: []\n",
	}

	for _, c := range cases {
		if _, err := Parse([]byte(c)); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse err=%v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("empty config must not validate")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GANTRY_CONFIG", "/etc/gantry.yaml")
	t.Setenv("GANTRY_TRACE", "true")
	t.Setenv("GANTRY_BACKEND", "tarm")

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv err=%v", err)
	}
	if e.ConfigPath != "/etc/gantry.yaml" || !e.Trace || e.Backend != "tarm" {
		t.Fatalf("unexpected env: %+v", e)
	}

	cfg := gantry(axis("x", "/dev/ttyUSB0", 9600), axis("y", "/dev/ttyUSB1", 9600))
	ApplyEnv(cfg, e)
	for _, a := range cfg.Gantry.Axes {
		if a.Backend != "tarm" {
			t.Fatalf("backend not forced on %s: %q", a.ID, a.Backend)
		}
	}
}

func TestLoadEnv_Defaults(t *testing.T) {
	// t.Setenv restores the previous values after the test
	for _, k := range []string{"GANTRY_CONFIG", "GANTRY_TRACE", "GANTRY_BACKEND"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	e, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv err=%v", err)
	}
	if e.ConfigPath != "gantry.yaml" || e.Trace || e.Backend != "" {
		t.Fatalf("unexpected defaults: %+v", e)
	}
}
