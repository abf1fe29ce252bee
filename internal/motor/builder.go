// internal/motor/builder.go
package motor

import (
	cfg "github.com/tamzrod/gantry-hal/internal/config"
)

// Build opens and detects the controller of one configured axis and checks
// its firmware against the axis constraint.
// ONE attempt: no retries. The returned closer releases the serial link.
func Build(a cfg.AxisConfig) (Motor, func() error, error) {
	m, err := Create(a.Link())
	if err != nil {
		return nil, nil, err
	}

	if err := CheckFirmware(m, a.MinFirmware); err != nil {
		_ = m.Close()
		return nil, nil, err
	}

	return m, m.Close, nil
}
