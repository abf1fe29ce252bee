// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver"

	"github.com/tamzrod/gantry-hal/internal/link"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}
	if len(cfg.Gantry.Axes) == 0 {
		return errors.New("config: at least one axis required")
	}

	// key = lowercased id / port
	ids := make(map[string]struct{})
	ports := make(map[string]string)

	for i, a := range cfg.Gantry.Axes {
		id := strings.ToLower(strings.TrimSpace(a.ID))
		if id == "" {
			return fmt.Errorf("axis #%d: id required", i)
		}
		if _, dup := ids[id]; dup {
			return fmt.Errorf("axis %q: duplicate id", a.ID)
		}
		ids[id] = struct{}{}

		// ------------------------------------------------------------
		// LINK
		// ------------------------------------------------------------

		if a.Port == "" {
			return fmt.Errorf("axis %q: port required", a.ID)
		}
		// One handle per physical axis: a port cannot be shared.
		if prev, taken := ports[a.Port]; taken {
			return fmt.Errorf("axis %q: port %s already used by axis %q", a.ID, a.Port, prev)
		}
		ports[a.Port] = a.ID

		if a.Baud != 0 && !link.ValidBaud(a.Baud) {
			return fmt.Errorf("axis %q: baud %d not in %v", a.ID, a.Baud, link.AvailableBaud)
		}
		if a.TimeoutMs < 0 {
			return fmt.Errorf("axis %q: timeout_ms must be >= 0", a.ID)
		}
		if !link.KnownBackend(a.Backend) {
			return fmt.Errorf("axis %q: unknown backend %q", a.ID, a.Backend)
		}

		// ------------------------------------------------------------
		// FIRMWARE / HOMING
		// ------------------------------------------------------------

		if a.MinFirmware != "" {
			if _, err := semver.NewConstraint(a.MinFirmware); err != nil {
				return fmt.Errorf("axis %q: min_firmware %q: %v", a.ID, a.MinFirmware, err)
			}
		}
		if a.Homing.PollMs < 0 || a.Homing.TimeoutMs < 0 {
			return fmt.Errorf("axis %q: homing durations must be >= 0", a.ID)
		}
	}

	return nil
}
