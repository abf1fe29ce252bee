// internal/motor/factory.go
package motor

import (
	"fmt"

	"github.com/tamzrod/gantry-hal/internal/link"
	"github.com/tamzrod/gantry-hal/internal/protocol"
)

var openLink = link.Open

// Create opens the serial link and returns the driver matching the
// controller's self-reported type. The link is closed on any failure.
func Create(cfg link.Config) (Motor, error) {
	l, err := openLink(cfg)
	if err != nil {
		return nil, &protocol.LinkError{Op: "open", Err: err}
	}

	c := protocol.NewCodec(l)
	m, err := New(c)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	return m, nil
}

// New detects the controller behind c and binds the matching driver to it.
// On failure c is left open; the caller still owns it.
func New(c *protocol.Codec) (Motor, error) {
	typ, err := c.ReadString(protocol.Cmd(mnGetType))
	if err != nil {
		return nil, fmt.Errorf("motor: detect device type: %w", err)
	}

	v, err := ParseVariant(typ)
	if err != nil {
		return nil, err
	}
	return newVariant(v, c), nil
}
