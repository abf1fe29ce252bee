// internal/probe/probe.go
package probe

import (
	"fmt"
	"time"

	"github.com/tamzrod/gantry-hal/internal/motor"
)

// Once reads the identity and state of one axis.
// All-or-nothing: the first failed query aborts the probe and is returned
// in Report.Err; nothing read before it is kept.
func Once(axisID string, m motor.Motor) Report {
	res := Report{
		AxisID:  axisID,
		At:      time.Now(),
		Variant: m.Variant().String(),
	}

	var (
		id  Identity
		st  State
		err error
	)

	steps := []struct {
		name string
		run  func() error
	}{
		{"type", func() error { id.Type, err = m.Type(); return err }},
		{"serial", func() error { id.Serial, err = m.Serial(); return err }},
		{"version", func() error { id.Version, err = m.Version(); return err }},
		{"position", func() error { st.Position, err = m.Position(); return err }},
		{"enabled", func() error { st.Enabled, err = m.IsEnabled(); return err }},
		{"homing", func() error { st.Homing, err = m.IsHoming(); return err }},
		{"lower limit", func() error { st.LowerLimit, err = m.LowerLimitSwitch(); return err }},
		{"upper limit", func() error { st.UpperLimit, err = m.UpperLimitSwitch(); return err }},
		{"position reached", func() error { st.PositionReached, err = m.IsPositionReached(); return err }},
	}

	for _, s := range steps {
		if e := s.run(); e != nil {
			res.Err = fmt.Errorf("probe: %s: %w", s.name, e)
			return res
		}
	}

	// Commit only if all reads succeeded
	res.Identity = id
	res.State = st
	return res
}
