// internal/config/normalize.go
package config

import (
	"strings"

	"github.com/tamzrod/gantry-hal/internal/link"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	for ai := range cfg.Gantry.Axes {
		a := &cfg.Gantry.Axes[ai]

		// ids are matched case-insensitively
		a.ID = strings.ToLower(strings.TrimSpace(a.ID))

		if a.Baud == 0 {
			a.Baud = DefaultBaud
		}
		if a.TimeoutMs == 0 {
			a.TimeoutMs = DefaultTimeoutMs
		}
		if a.Backend == "" {
			a.Backend = link.DefaultBackend
		}
		if a.Homing.PollMs == 0 {
			a.Homing.PollMs = DefaultPollMs
		}

		// Homing.TimeoutMs stays 0 (unbounded) unless set.
	}
}
