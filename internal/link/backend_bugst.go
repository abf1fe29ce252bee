// internal/link/backend_bugst.go
package link

import (
	"go.bug.st/serial"
)

// bugstPort adapts go.bug.st/serial.
// That library returns (0, nil) when the read timeout expires.
type bugstPort struct {
	p serial.Port
}

func openBugst(cfg Config) (Port, error) {
	p, err := serial.Open(cfg.Port, &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(cfg.Timeout); err != nil {
		_ = p.Close()
		return nil, err
	}
	return &bugstPort{p: p}, nil
}

func (b *bugstPort) Read(buf []byte) (int, error) {
	n, err := b.p.Read(buf)
	if n == 0 && err == nil {
		return 0, ErrTimeout
	}
	return n, err
}

func (b *bugstPort) Write(buf []byte) (int, error) { return b.p.Write(buf) }

func (b *bugstPort) ResetInput() error { return b.p.ResetInputBuffer() }

func (b *bugstPort) Close() error { return b.p.Close() }

// Ports lists the serial devices present on this machine.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}
