// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tamzrod/gantry-hal/internal/link"
)

type Config struct {
	Gantry GantryConfig `yaml:"gantry"`
}

type GantryConfig struct {
	Axes []AxisConfig `yaml:"axes"`
}

// ---- AXIS ----

type AxisConfig struct {
	ID        string `yaml:"id"`
	Port      string `yaml:"port"`
	Baud      int    `yaml:"baud"`
	TimeoutMs int    `yaml:"timeout_ms"`
	Backend   string `yaml:"backend"`

	// Optional semver constraint on the controller firmware, e.g. ">= 3.0".
	MinFirmware string `yaml:"min_firmware"`

	Homing HomingConfig `yaml:"homing"`
}

// ---- HOMING ----

type HomingConfig struct {
	PollMs    int `yaml:"poll_ms"`
	TimeoutMs int `yaml:"timeout_ms"` // 0 = wait forever
}

// Defaults applied by Normalize.
const (
	DefaultBaud      = 9600
	DefaultTimeoutMs = 1000
	DefaultPollMs    = 100
)

// Load reads and parses a YAML config file.
// It does not validate.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML bytes into a Config.
// Unknown keys are rejected.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	return &cfg, nil
}

// Link returns the serial link settings of the axis.
func (a AxisConfig) Link() link.Config {
	return link.Config{
		Port:    a.Port,
		Baud:    a.Baud,
		Timeout: time.Duration(a.TimeoutMs) * time.Millisecond,
		Backend: a.Backend,
	}
}

// HomingInterval is the period between homing status queries.
func (a AxisConfig) HomingInterval() time.Duration {
	return time.Duration(a.Homing.PollMs) * time.Millisecond
}

// HomingTimeout bounds a homing wait; zero means unbounded.
func (a AxisConfig) HomingTimeout() time.Duration {
	return time.Duration(a.Homing.TimeoutMs) * time.Millisecond
}

// Axis returns the axis with the given id.
func (c *Config) Axis(id string) (AxisConfig, bool) {
	for _, a := range c.Gantry.Axes {
		if strings.EqualFold(a.ID, id) {
			return a, true
		}
	}
	return AxisConfig{}, false
}
