// internal/motor/bx4.go
package motor

import (
	"fmt"
	"sort"

	"github.com/tamzrod/gantry-hal/internal/protocol"
	"github.com/tamzrod/gantry-hal/internal/status"
)

// CS-BX4 registers.
const (
	mnBX4GetOperatingStatus = "OST"
	mnBX4GetConfigStatus    = "CST"
	mnBX4GetIOConfig        = "IOC"
)

// Parameter is a read-only drive parameter of the CS-BX4.
type Parameter string

// Parameters and their query mnemonics.
const (
	ParamMode              Parameter = "mode"
	ParamEncoderResolution Parameter = "encoder_resolution"
	ParamSpeedConstant     Parameter = "speed_constant"
	ParamMotorResistance   Parameter = "motor_resistance"
	ParamMagneticPitch     Parameter = "magnetic_pitch"
	ParamStepWidth         Parameter = "step_width"
	ParamStepNumber        Parameter = "step_number"
	ParamMinimumVelocity   Parameter = "minimum_velocity"
	ParamPositiveLimit     Parameter = "positive_limit"
	ParamNegativeLimit     Parameter = "negative_limit"
	ParamSamplingRate      Parameter = "sampling_rate"
	ParamVelocityPGain     Parameter = "velocity_p_gain"
	ParamVelocityIGain     Parameter = "velocity_i_gain"
	ParamPositionPGain     Parameter = "position_p_gain"
	ParamPositionDGain     Parameter = "position_d_gain"
	ParamCurrentIGain      Parameter = "current_i_gain"
	ParamPeakCurrent       Parameter = "peak_current"
	ParamContinuousCurrent Parameter = "continuous_current"
	ParamDeviation         Parameter = "deviation"
	ParamCorridor          Parameter = "corridor"
)

var bx4Parameters = map[Parameter]string{
	ParamMode:              "GMOD",
	ParamEncoderResolution: "GENCRES",
	ParamSpeedConstant:     "GKN",
	ParamMotorResistance:   "GRM",
	ParamMagneticPitch:     "GTM",
	ParamStepWidth:         "GSTW",
	ParamStepNumber:        "GSTN",
	ParamMinimumVelocity:   "GMV",
	ParamPositiveLimit:     "GPL",
	ParamNegativeLimit:     "GNL",
	ParamSamplingRate:      "GSR",
	ParamVelocityPGain:     "GPOR",
	ParamVelocityIGain:     "GI",
	ParamPositionPGain:     "GPP",
	ParamPositionDGain:     "GPD",
	ParamCurrentIGain:      "GCI",
	ParamPeakCurrent:       "GPC",
	ParamContinuousCurrent: "GCC",
	ParamDeviation:         "GDEV",
	ParamCorridor:          "GCORRIDOR",
}

// Parameters lists every parameter a CS-BX4 can report.
func Parameters() []Parameter {
	out := make([]Parameter, 0, len(bx4Parameters))
	for p := range bx4Parameters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParameterReader is implemented by controllers exposing drive parameters.
type ParameterReader interface {
	Parameter(p Parameter) (float64, error)
}

// SpecialConfigReader is implemented by controllers with an input configuration register.
type SpecialConfigReader interface {
	SpecialConfig() (status.Register, error)
}

// bx4Motor drives the CS-BX4 family.
// Its state is reported through integer bit registers.
type bx4Motor struct {
	base
}

var (
	_ Motor               = (*bx4Motor)(nil)
	_ ParameterReader     = (*bx4Motor)(nil)
	_ SpecialConfigReader = (*bx4Motor)(nil)
)

func (m *bx4Motor) Variant() Variant { return VariantCSBX4 }

func (m *bx4Motor) OperatingStatus() (status.Register, error) {
	return m.readRegister(mnBX4GetOperatingStatus, status.BX4OperatingStatus)
}

func (m *bx4Motor) ConfigStatus() (status.Register, error) {
	return m.readRegister(mnBX4GetConfigStatus, status.BX4ConfigStatus)
}

// SpecialConfig reads the input configuration register.
func (m *bx4Motor) SpecialConfig() (status.Register, error) {
	return m.readRegister(mnBX4GetIOConfig, status.BX4SpecialConfiguration)
}

// Parameter reads one drive parameter. Integer and decimal replies are both accepted.
func (m *bx4Motor) Parameter(p Parameter) (float64, error) {
	mn, ok := bx4Parameters[p]
	if !ok {
		return 0, fmt.Errorf("motor: unknown parameter %q", p)
	}
	return m.codec.ReadFloat(protocol.Cmd(mn))
}

func (m *bx4Motor) operatingBit(name string) (bool, error) {
	r, err := m.OperatingStatus()
	if err != nil {
		return false, err
	}
	return r.Bool(name), nil
}

func (m *bx4Motor) IsHoming() (bool, error) {
	return m.operatingBit("homing_running")
}

func (m *bx4Motor) IsEnabled() (bool, error) {
	r, err := m.ConfigStatus()
	if err != nil {
		return false, err
	}
	return r.Bool("power_amplifier"), nil
}

func (m *bx4Motor) LowerLimitSwitch() (bool, error) {
	return m.operatingBit("status_input_1")
}

func (m *bx4Motor) UpperLimitSwitch() (bool, error) {
	return m.operatingBit("status_input_2")
}

func (m *bx4Motor) IsPositionReached() (bool, error) {
	return m.operatingBit("position_attained")
}
