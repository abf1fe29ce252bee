// internal/motor/cs.go
package motor

import (
	"fmt"

	"github.com/tamzrod/gantry-hal/internal/protocol"
	"github.com/tamzrod/gantry-hal/internal/status"
)

// CS status strings.
const (
	mnCSGetStatus       = "GST"
	mnCSGetActualStatus = "GAST"
)

// csMotor drives the CS family (MCBL 2805 class).
// Its state is reported as digit strings rather than bit registers.
type csMotor struct {
	base
}

var _ Motor = (*csMotor)(nil)

func (m *csMotor) Variant() Variant { return VariantCS }

// flag reads one digit field of a status string.
func (m *csMotor) flag(mnemonic string, l status.CharLayout, name string) (bool, error) {
	cmd, ans, err := m.readChars(mnemonic)
	if err != nil {
		return false, err
	}
	v, err := status.DecodeChar(l, ans, name)
	if err != nil {
		return false, charError(cmd, ans, err)
	}
	return v != 0, nil
}

func (m *csMotor) IsHoming() (bool, error) {
	return m.flag(mnCSGetActualStatus, status.CSActualStatus, "homing_running")
}

func (m *csMotor) IsEnabled() (bool, error) {
	return m.flag(mnCSGetStatus, status.CSDriveStatus, "drive_enabled")
}

func (m *csMotor) LowerLimitSwitch() (bool, error) {
	return m.flag(mnCSGetStatus, status.CSDriveStatus, "lower_limit_switch")
}

func (m *csMotor) UpperLimitSwitch() (bool, error) {
	return m.flag(mnCSGetActualStatus, status.CSActualStatus, "upper_limit_switch")
}

// IsPositionReached only trusts a GST reply of the full fixed width.
func (m *csMotor) IsPositionReached() (bool, error) {
	cmd, ans, err := m.readChars(mnCSGetStatus)
	if err != nil {
		return false, err
	}
	if len(ans) != status.CSDriveStatusLength {
		return false, &protocol.DecodeError{
			Command: cmd,
			Reply:   ans,
			Reason:  protocol.ReasonLength,
			Err:     fmt.Errorf("want %d characters, got %d", status.CSDriveStatusLength, len(ans)),
		}
	}
	v, err := status.DecodeChar(status.CSDriveStatus, ans, "position_attained")
	if err != nil {
		return false, charError(cmd, ans, err)
	}
	return v != 0, nil
}

// OperatingStatus combines the GST and GAST status strings.
func (m *csMotor) OperatingStatus() (status.Register, error) {
	drive, err := m.decodeChars(mnCSGetStatus, status.CSDriveStatus)
	if err != nil {
		return status.Register{}, err
	}
	actual, err := m.decodeChars(mnCSGetActualStatus, status.CSActualStatus)
	if err != nil {
		return status.Register{}, err
	}
	return drive.Merge(status.OperatingStatus, actual), nil
}

// ConfigStatus has no CS counterpart.
func (m *csMotor) ConfigStatus() (status.Register, error) {
	return status.Register{}, ErrUnsupported
}

func (m *csMotor) decodeChars(mnemonic string, l status.CharLayout) (status.Register, error) {
	cmd, ans, err := m.readChars(mnemonic)
	if err != nil {
		return status.Register{}, err
	}
	r, err := status.DecodeChars(l, ans)
	if err != nil {
		return status.Register{}, charError(cmd, ans, err)
	}
	return r, nil
}
