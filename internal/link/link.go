// internal/link/link.go
package link

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// AvailableBaud lists the baud rates the controllers accept.
var AvailableBaud = []int{1200, 2400, 4800, 9600, 19200, 57600, 115200}

// ErrTimeout is returned by a Port when its read timeout elapses with no data.
// Backends translate their library's own timeout signalling into it.
var ErrTimeout = errors.New("link: read timeout")

// Backend names.
const (
	BackendGoburrow = "goburrow"
	BackendTarm     = "tarm"
	BackendBugst    = "bugst"
)

// DefaultBackend is used when Config.Backend is empty.
// goburrow cannot flush the driver's receive queue, so it is opt-in.
const DefaultBackend = BackendBugst

// Config is the transport configuration of one axis.
type Config struct {
	Port    string
	Baud    int
	Timeout time.Duration
	Backend string
}

// Link is a line-terminated request/response channel.
// It is not safe for concurrent use.
type Link interface {
	Write(b []byte) error
	// ReadLine blocks until a terminated line arrives or the timeout elapses.
	// On timeout it returns an empty line and a nil error.
	ReadLine() ([]byte, error)
	// Discard drops every byte received so far, buffered or still queued
	// in the driver, so a late reply cannot answer the next request.
	Discard() error
	Close() error
}

// Port is the byte-level contract every backend adapts to.
type Port interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

// inputResetter is implemented by backends able to flush the driver's
// receive queue.
type inputResetter interface {
	ResetInput() error
}

type opener func(cfg Config) (Port, error)

var backends = map[string]opener{
	BackendGoburrow: openGoburrow,
	BackendTarm:     openTarm,
	BackendBugst:    openBugst,
}

// KnownBackend reports whether name selects a registered backend.
// The empty name selects DefaultBackend.
func KnownBackend(name string) bool {
	if name == "" {
		return true
	}
	_, ok := backends[name]
	return ok
}

// ValidBaud reports whether baud is one of AvailableBaud.
func ValidBaud(baud int) bool {
	for _, b := range AvailableBaud {
		if b == baud {
			return true
		}
	}
	return false
}

// Open opens the serial device described by cfg.
func Open(cfg Config) (Link, error) {
	if cfg.Port == "" {
		return nil, errors.New("link: port required")
	}
	if !ValidBaud(cfg.Baud) {
		return nil, fmt.Errorf("link: unsupported baud %d", cfg.Baud)
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("link: timeout must be > 0")
	}

	name := cfg.Backend
	if name == "" {
		name = DefaultBackend
	}
	open, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("link: unknown backend %q", name)
	}

	p, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("link: open %s (%s): %w", cfg.Port, name, err)
	}
	return NewLink(cfg.Port, p), nil
}

// NewLink wraps an already opened Port.
func NewLink(name string, p Port) Link {
	return &lineLink{name: name, port: p}
}

type lineLink struct {
	name    string
	port    Port
	pending []byte // bytes received past the last terminator
}

func (l *lineLink) Discard() error {
	if len(l.pending) > 0 {
		trace("discard", l.name, l.pending)
		l.pending = l.pending[:0]
	}
	if r, ok := l.port.(inputResetter); ok {
		return r.ResetInput()
	}
	return nil
}

func (l *lineLink) Write(b []byte) error {
	trace("tx", l.name, b)
	for len(b) > 0 {
		n, err := l.port.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}

func (l *lineLink) ReadLine() ([]byte, error) {
	var chunk [64]byte

	for {
		if i := bytes.IndexByte(l.pending, '\n'); i >= 0 {
			line := trimLine(l.pending[:i])
			l.pending = append(l.pending[:0], l.pending[i+1:]...)
			trace("rx", l.name, line)
			return line, nil
		}

		n, err := l.port.Read(chunk[:])
		l.pending = append(l.pending, chunk[:n]...)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrTimeout) {
			return nil, err
		}

		// CR-only terminated replies are complete once the line goes quiet.
		if k := len(l.pending); k > 0 && l.pending[k-1] == '\r' {
			line := trimLine(l.pending)
			l.pending = l.pending[:0]
			trace("rx", l.name, line)
			return line, nil
		}

		trace("timeout", l.name, l.pending)
		l.pending = l.pending[:0]
		return []byte{}, nil
	}
}

func (l *lineLink) Close() error {
	if l == nil || l.port == nil {
		return nil
	}
	return l.port.Close()
}

// trimLine copies b without trailing whitespace and terminators.
func trimLine(b []byte) []byte {
	b = bytes.TrimRight(b, " \t\r\n")
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
