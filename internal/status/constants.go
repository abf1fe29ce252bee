// internal/status/constants.go
package status

// Register layout tables.
// These values mirror the controller firmware and MUST NOT be configurable.

// Kind names a register layout.
type Kind int

const (
	OperatingStatus Kind = iota + 1
	ConfigStatus
	ActualStatus
	DriveStatus
	SpecialConfiguration
)

func (k Kind) String() string {
	switch k {
	case OperatingStatus:
		return "operating_status"
	case ConfigStatus:
		return "config_status"
	case ActualStatus:
		return "actual_status"
	case DriveStatus:
		return "drive_status"
	case SpecialConfiguration:
		return "special_configuration"
	default:
		return "unknown"
	}
}

// ---- OPERATING STATUS (CS-BX4, OST) ----

// BX4OperatingStatus is the integer register returned by OST.
var BX4OperatingStatus = Layout{
	Kind: OperatingStatus,
	Fields: []Field{
		{Name: "homing_running", Offset: 0, Width: 1},
		{Name: "program_running", Offset: 1, Width: 1},
		{Name: "program_stopped_delay", Offset: 2, Width: 1},
		{Name: "program_stopped_notify", Offset: 3, Width: 1},
		{Name: "current_limit_active", Offset: 4, Width: 1},
		{Name: "deviation_error", Offset: 5, Width: 1},
		{Name: "overvoltage", Offset: 6, Width: 1},
		{Name: "overtemperature", Offset: 7, Width: 1},
		{Name: "status_input_1", Offset: 8, Width: 1},
		{Name: "status_input_2", Offset: 9, Width: 1},
		{Name: "status_input_3", Offset: 10, Width: 1},
		// bits 11-15 reserved
		{Name: "position_attained", Offset: 16, Width: 1},
		{Name: "continuous_current_limit", Offset: 17, Width: 1},
	},
}

// ---- CONFIG STATUS (CS-BX4, CST) ----

// BX4ConfigStatus is the integer register returned by CST.
// Bit 0 is reserved.
var BX4ConfigStatus = Layout{
	Kind: ConfigStatus,
	Fields: []Field{
		{Name: "automatic_response", Offset: 1, Width: 2},
		{Name: "velocity_presetting", Offset: 3, Width: 3},
		// bit 6 reserved
		{Name: "mode", Offset: 7, Width: 3},
		{Name: "power_amplifier", Offset: 10, Width: 1},
		{Name: "position_controller", Offset: 11, Width: 1},
		{Name: "analogue_direction", Offset: 12, Width: 1},
		{Name: "position_limits", Offset: 13, Width: 1},
		{Name: "sin_commutation", Offset: 14, Width: 1},
	},
}

// ---- SPECIAL CONFIGURATION (CS-BX4, IOC) ----

// BX4SpecialConfiguration is the input configuration word returned by IOC.
var BX4SpecialConfiguration = Layout{
	Kind: SpecialConfiguration,
	Fields: []Field{
		{Name: "input_1_level", Offset: 0, Width: 1},
		{Name: "input_2_level", Offset: 1, Width: 1},
		{Name: "input_3_level", Offset: 2, Width: 1},
	},
}

// ---- STATUS STRINGS (CS) ----

// CSDriveStatusLength is the fixed width of a complete GST reply.
const CSDriveStatusLength = 7

// CSDriveStatus is the digit string returned by GST.
var CSDriveStatus = CharLayout{
	Kind:   DriveStatus,
	Length: CSDriveStatusLength,
	Fields: []CharField{
		{Name: "drive_enabled", Index: 3},
		{Name: "position_attained", Index: 4},
		{Name: "lower_limit_switch", Index: 6},
	},
}

// CSActualStatus is the digit string returned by GAST.
var CSActualStatus = CharLayout{
	Kind: ActualStatus,
	Fields: []CharField{
		{Name: "upper_limit_switch", Index: 0},
		{Name: "homing_running", Index: 3},
	},
}
