// internal/motor/variant.go
package motor

import "github.com/tamzrod/gantry-hal/internal/protocol"

// Variant is a supported controller family.
// It is fixed for the lifetime of a Motor.
type Variant int

const (
	VariantCS Variant = iota + 1
	VariantCSBX4
)

// String returns the type string the controller reports for itself.
func (v Variant) String() string {
	switch v {
	case VariantCS:
		return "CS"
	case VariantCSBX4:
		return "CS-BX4"
	default:
		return "unknown"
	}
}

// ParseVariant maps a GTYP reply to a Variant.
// The mapping is closed: a new controller family is one more case here.
func ParseVariant(typ string) (Variant, error) {
	switch typ {
	case "CS":
		return VariantCS, nil
	case "CS-BX4":
		return VariantCSBX4, nil
	case "":
		return 0, ErrNotResponding
	default:
		return 0, &UnknownDeviceTypeError{Type: typ}
	}
}

func newVariant(v Variant, c *protocol.Codec) Motor {
	switch v {
	case VariantCS:
		return &csMotor{base{codec: c}}
	case VariantCSBX4:
		return &bx4Motor{base{codec: c}}
	default:
		return nil
	}
}
