// internal/motor/errors.go
package motor

import (
	"errors"
	"fmt"
)

// ErrNotResponding means the controller returned no type string.
var ErrNotResponding = errors.New("motor: device not responding")

// ErrHomingTimeout is returned by a bounded WaitHoming that ran out of time.
var ErrHomingTimeout = errors.New("motor: homing did not finish in time")

// UnknownDeviceTypeError means the controller reported an unmapped type.
type UnknownDeviceTypeError struct {
	Type string
}

func (err *UnknownDeviceTypeError) Error() string {
	return fmt.Sprintf("motor: unknown device type %q", err.Type)
}

// FirmwareError means the controller firmware fails the configured constraint.
type FirmwareError struct {
	Version    string
	Constraint string
}

func (err *FirmwareError) Error() string {
	return fmt.Sprintf("motor: firmware %s does not satisfy %s", err.Version, err.Constraint)
}
