// internal/probe/types.go
package probe

import "time"

// Identity is what the controller reports about itself.
type Identity struct {
	Type    string
	Serial  string
	Version string
}

// State is the live state of an axis at one instant.
type State struct {
	Position        int
	Enabled         bool
	Homing          bool
	LowerLimit      bool
	UpperLimit      bool
	PositionReached bool
}

// Report is the result of one probe of one axis.
type Report struct {
	AxisID string
	At     time.Time

	Variant  string
	Identity Identity
	State    State

	Err error // non-nil means the probe failed and Identity/State are incomplete
}
