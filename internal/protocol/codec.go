// internal/protocol/codec.go
package protocol

import (
	"errors"
	"strconv"
	"sync"

	"github.com/tamzrod/gantry-hal/internal/link"
)

// Codec runs command/reply exchanges over one link.
// It serializes single exchanges because the protocol has no request ids;
// sequences of exchanges still need the caller to hold the handle exclusively.
type Codec struct {
	mu   sync.Mutex
	link link.Link
}

// NewCodec binds a codec to an open link. The codec owns the link.
func NewCodec(l link.Link) *Codec {
	return &Codec{link: l}
}

// Close releases the link.
func (c *Codec) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.link == nil {
		return nil
	}
	err := c.link.Close()
	c.link = nil
	return err
}

// Send writes one command. The device does not acknowledge it.
// Input received before the write is dropped first.
func (c *Codec) Send(cmd Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send(cmd)
}

// ReadReply reads one reply line. An elapsed timeout yields "".
func (c *Codec) ReadReply() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReply()
}

// ReadString sends cmd and returns the reply verbatim.
func (c *Codec) ReadString(cmd Command) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exchange(cmd)
}

// ReadInt sends cmd and parses the reply as a base-10 integer.
// Unparseable replies come back as *DecodeError, never as a default value.
func (c *Codec) ReadInt(cmd Command) (int, error) {
	ans, err := c.ReadString(cmd)
	if err != nil {
		return 0, err
	}
	if ans == "" {
		return 0, &DecodeError{Command: cmd, Reply: ans, Reason: ReasonEmpty}
	}
	v, err := strconv.Atoi(ans)
	if err != nil {
		return 0, &DecodeError{Command: cmd, Reply: ans, Reason: ReasonMalformed, Err: unwrapNum(err)}
	}
	return v, nil
}

// ReadFloat sends cmd and parses the reply as a decimal float.
func (c *Codec) ReadFloat(cmd Command) (float64, error) {
	ans, err := c.ReadString(cmd)
	if err != nil {
		return 0, err
	}
	if ans == "" {
		return 0, &DecodeError{Command: cmd, Reply: ans, Reason: ReasonEmpty}
	}
	v, err := strconv.ParseFloat(ans, 64)
	if err != nil {
		return 0, &DecodeError{Command: cmd, Reply: ans, Reason: ReasonMalformed, Err: unwrapNum(err)}
	}
	return v, nil
}

// ---- internal helpers (caller holds mu) ----

var errClosed = errors.New("link closed")

func (c *Codec) send(cmd Command) error {
	if c.link == nil {
		return &LinkError{Op: "write", Err: errClosed}
	}
	if err := c.link.Discard(); err != nil {
		return &LinkError{Op: "discard", Err: err}
	}
	if err := c.link.Write(Encode(cmd)); err != nil {
		return &LinkError{Op: "write", Err: err}
	}
	return nil
}

func (c *Codec) readReply() (string, error) {
	if c.link == nil {
		return "", &LinkError{Op: "read", Err: errClosed}
	}
	b, err := c.link.ReadLine()
	if err != nil {
		return "", &LinkError{Op: "read", Err: err}
	}
	return string(b), nil
}

func (c *Codec) exchange(cmd Command) (string, error) {
	if err := c.send(cmd); err != nil {
		return "", err
	}
	return c.readReply()
}

// unwrapNum drops strconv's repetition of the input.
func unwrapNum(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}
