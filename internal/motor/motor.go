// internal/motor/motor.go
package motor

import (
	"errors"
	"strconv"
	"time"

	"github.com/Masterminds/semver"

	"github.com/tamzrod/gantry-hal/internal/protocol"
	"github.com/tamzrod/gantry-hal/internal/status"
)

// Motor is the operation set of one gantry axis.
//
// Query operations return a decoded value or an error; a failed query never
// yields a usable default. Action operations only write the command: the
// controller sends no acknowledgement, so a nil error means the bytes left
// the host, not that the device accepted them.
//
// A Motor is not safe for concurrent use. Callers sharing one across
// goroutines must serialize access to it.
type Motor interface {
	Variant() Variant
	Close() error

	// identification
	Type() (string, error)
	Serial() (string, error)
	Version() (string, error)
	Firmware() (*semver.Version, error)

	// position, in encoder increments
	Position() (int, error)
	SetPositionTarget(value int, relative bool) error
	MoveToTarget() error
	MoveTo(value int, relative bool) error
	SetHome(value int) error

	// velocity and ramps
	Velocity() (int, error)
	TargetVelocity() (int, error)
	SetVelocity(value int) error
	VelocityLimit() (int, error)
	SetVelocityLimit(value int) error
	AccelerationLimit() (int, error)
	SetAccelerationLimit(value int) error
	DecelerationLimit() (int, error)
	SetDecelerationLimit(value int) error

	// drive
	Enable() error
	Disable() error
	StartHoming() error

	// registers
	OperatingStatus() (status.Register, error)
	ConfigStatus() (status.Register, error)

	// variant specific
	IsHoming() (bool, error)
	IsEnabled() (bool, error)
	LowerLimitSwitch() (bool, error)
	UpperLimitSwitch() (bool, error)
	IsPositionReached() (bool, error)
}

// ErrUnsupported is returned for operations a controller family lacks.
var ErrUnsupported = errors.New("motor: operation not supported by this controller")

// Mnemonics shared by both controller families.
const (
	mnEnable              = "EN"
	mnDisable             = "DI"
	mnGetPosition         = "POS"
	mnSetPositionAbsolute = "LA"
	mnSetPositionRelative = "LR"
	mnMovePosition        = "M"
	mnStartHoming         = "GOHOSEQ"
	mnSetHome             = "HO"
	mnSetVelocity         = "V"
	mnGetVelocity         = "GN"
	mnGetTargetVelocity   = "GV"
	mnSetMaxVelocity      = "SP"
	mnGetMaxVelocity      = "GSP"
	mnSetAcceleration     = "AC"
	mnGetAcceleration     = "GAC"
	mnSetDeceleration     = "DEC"
	mnGetDeceleration     = "GDEC"
	mnGetType             = "GTYP"
	mnGetSerial           = "GSER"
	mnGetVersion          = "VER"
)

// base implements the variant independent operations.
type base struct {
	codec *protocol.Codec
}

func (b *base) Close() error { return b.codec.Close() }

func (b *base) Type() (string, error) {
	return b.codec.ReadString(protocol.Cmd(mnGetType))
}

func (b *base) Serial() (string, error) {
	return b.codec.ReadString(protocol.Cmd(mnGetSerial))
}

func (b *base) Version() (string, error) {
	return b.codec.ReadString(protocol.Cmd(mnGetVersion))
}

func (b *base) Firmware() (*semver.Version, error) {
	v, err := b.Version()
	if err != nil {
		return nil, err
	}
	return ParseFirmware(v)
}

func (b *base) Position() (int, error) {
	return b.codec.ReadInt(protocol.Cmd(mnGetPosition))
}

// SetPositionTarget loads a new target without starting the move.
func (b *base) SetPositionTarget(value int, relative bool) error {
	if relative {
		return b.codec.Send(protocol.CmdArg(mnSetPositionRelative, value))
	}
	return b.codec.Send(protocol.CmdArg(mnSetPositionAbsolute, value))
}

// MoveToTarget starts a move to the loaded target.
func (b *base) MoveToTarget() error {
	return b.codec.Send(protocol.Cmd(mnMovePosition))
}

func (b *base) MoveTo(value int, relative bool) error {
	if err := b.SetPositionTarget(value, relative); err != nil {
		return err
	}
	return b.MoveToTarget()
}

// SetHome redefines the actual position as value.
func (b *base) SetHome(value int) error {
	return b.codec.Send(protocol.CmdArg(mnSetHome, value))
}

func (b *base) Velocity() (int, error) {
	return b.codec.ReadInt(protocol.Cmd(mnGetVelocity))
}

func (b *base) TargetVelocity() (int, error) {
	return b.codec.ReadInt(protocol.Cmd(mnGetTargetVelocity))
}

// SetVelocity runs the motor at value rpm.
func (b *base) SetVelocity(value int) error {
	return b.codec.Send(protocol.CmdArg(mnSetVelocity, value))
}

func (b *base) VelocityLimit() (int, error) {
	return b.codec.ReadInt(protocol.Cmd(mnGetMaxVelocity))
}

func (b *base) SetVelocityLimit(value int) error {
	return b.codec.Send(protocol.CmdArg(mnSetMaxVelocity, value))
}

func (b *base) AccelerationLimit() (int, error) {
	return b.codec.ReadInt(protocol.Cmd(mnGetAcceleration))
}

func (b *base) SetAccelerationLimit(value int) error {
	return b.codec.Send(protocol.CmdArg(mnSetAcceleration, value))
}

func (b *base) DecelerationLimit() (int, error) {
	return b.codec.ReadInt(protocol.Cmd(mnGetDeceleration))
}

func (b *base) SetDecelerationLimit(value int) error {
	return b.codec.Send(protocol.CmdArg(mnSetDeceleration, value))
}

func (b *base) Enable() error {
	return b.codec.Send(protocol.Cmd(mnEnable))
}

func (b *base) Disable() error {
	return b.codec.Send(protocol.Cmd(mnDisable))
}

func (b *base) StartHoming() error {
	return b.codec.Send(protocol.Cmd(mnStartHoming))
}

// readRegister reads an integer register and decodes it against l.
func (b *base) readRegister(mnemonic string, l status.Layout) (status.Register, error) {
	cmd := protocol.Cmd(mnemonic)
	v, err := b.codec.ReadInt(cmd)
	if err != nil {
		return status.Register{}, err
	}
	if v < 0 || int64(v) > int64(^uint32(0)) {
		return status.Register{}, &protocol.DecodeError{
			Command: cmd,
			Reply:   strconv.Itoa(v),
			Reason:  protocol.ReasonMalformed,
			Err:     errors.New("register value out of range"),
		}
	}
	return status.Decode(l, uint32(v)), nil
}

// readChars sends mnemonic and returns the raw status string.
func (b *base) readChars(mnemonic string) (protocol.Command, string, error) {
	cmd := protocol.Cmd(mnemonic)
	ans, err := b.codec.ReadString(cmd)
	return cmd, ans, err
}

// charError converts a status string failure into a DecodeError.
func charError(cmd protocol.Command, reply string, err error) error {
	reason := protocol.ReasonMalformed
	switch {
	case reply == "":
		reason = protocol.ReasonEmpty
	case errors.Is(err, status.ErrShort):
		reason = protocol.ReasonShort
	}
	return &protocol.DecodeError{Command: cmd, Reply: reply, Reason: reason, Err: err}
}

// DefaultHomingInterval is the poll period used by WaitHoming callers
// that have no preference.
const DefaultHomingInterval = 100 * time.Millisecond
