// internal/config/env.go
package config

import (
	"github.com/caarlos0/env/v6"
)

// Env holds process level overrides read from the environment.
type Env struct {
	ConfigPath string `env:"GANTRY_CONFIG" envDefault:"gantry.yaml"`
	Trace      bool   `env:"GANTRY_TRACE" envDefault:"false"`
	Backend    string `env:"GANTRY_BACKEND"`
}

// LoadEnv parses the GANTRY_* environment variables.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// ApplyEnv overlays environment overrides onto cfg.
// It MUST be called before Validate so forced values are checked too.
func ApplyEnv(cfg *Config, e Env) {
	if cfg == nil || e.Backend == "" {
		return
	}
	for i := range cfg.Gantry.Axes {
		cfg.Gantry.Axes[i].Backend = e.Backend
	}
}
