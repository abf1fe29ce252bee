// internal/link/linktest/device.go
package linktest

import (
	"strings"
	"sync"
)

// Device is a scripted in-memory controller implementing link.Link.
// A written command whose text (without terminator) is a key of Replies
// queues that reply; any other command is silently accepted, so the
// following ReadLine behaves like a link timeout.
type Device struct {
	mu sync.Mutex

	Replies  map[string]string
	WriteErr error
	ReadErr  error

	Sent   []string
	Closed bool

	queue    []string
	discards int
}

// New returns a Device answering with replies.
func New(replies map[string]string) *Device {
	if replies == nil {
		replies = map[string]string{}
	}
	return &Device{Replies: replies}
}

// Set changes the reply for one command.
func (d *Device) Set(cmd, reply string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Replies[cmd] = reply
}

// Count reports how many times cmd was written.
func (d *Device) Count(cmd string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, s := range d.Sent {
		if s == cmd {
			n++
		}
	}
	return n
}

func (d *Device) Write(b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.WriteErr != nil {
		return d.WriteErr
	}
	cmd := strings.TrimSuffix(string(b), "\r")
	d.Sent = append(d.Sent, cmd)
	if r, ok := d.Replies[cmd]; ok {
		d.queue = append(d.queue, r)
	}
	return nil
}

func (d *Device) ReadLine() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ReadErr != nil {
		return nil, d.ReadErr
	}
	if len(d.queue) == 0 {
		return []byte{}, nil
	}
	r := d.queue[0]
	d.queue = d.queue[1:]
	return []byte(r), nil
}

// Late queues a reply no pending request asked for, as a controller
// answering after the link timed out would.
func (d *Device) Late(reply string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queue = append(d.queue, reply)
}

// Discards reports how many times the input was flushed.
func (d *Device) Discards() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.discards
}

func (d *Device) Discard() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.discards++
	d.queue = nil
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Closed = true
	return nil
}
