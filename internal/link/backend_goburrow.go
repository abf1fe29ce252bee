// internal/link/backend_goburrow.go
package link

import (
	"errors"

	"github.com/goburrow/serial"
)

// goburrowPort adapts github.com/goburrow/serial.
type goburrowPort struct {
	p serial.Port
}

func openGoburrow(cfg Config) (Port, error) {
	p, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.Baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return &goburrowPort{p: p}, nil
}

func (g *goburrowPort) Read(b []byte) (int, error) {
	n, err := g.p.Read(b)
	if errors.Is(err, serial.ErrTimeout) {
		return n, ErrTimeout
	}
	return n, err
}

func (g *goburrowPort) Write(b []byte) (int, error) { return g.p.Write(b) }

func (g *goburrowPort) Close() error { return g.p.Close() }
