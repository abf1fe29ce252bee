// internal/link/backend_tarm.go
package link

import (
	"errors"
	"io"

	"github.com/tarm/serial"
)

// tarmPort adapts github.com/tarm/serial.
// tarm reports an expired read timeout as a zero-length io.EOF.
type tarmPort struct {
	p *serial.Port
}

func openTarm(cfg Config) (Port, error) {
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Port,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.Timeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, err
	}
	return &tarmPort{p: p}, nil
}

func (t *tarmPort) Read(b []byte) (int, error) {
	n, err := t.p.Read(b)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, ErrTimeout
	}
	return n, err
}

func (t *tarmPort) Write(b []byte) (int, error) { return t.p.Write(b) }

func (t *tarmPort) ResetInput() error { return t.p.Flush() }

func (t *tarmPort) Close() error { return t.p.Close() }
