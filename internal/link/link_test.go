// internal/link/link_test.go
package link

import (
	"errors"
	"testing"
	"time"
)

// ---- fake port ----

// fakePort returns one scripted chunk per Read, then ErrTimeout.
// A Write queues answer, as the controller replying to it.
type fakePort struct {
	chunks  [][]byte
	answer  []byte
	readErr error
	written []byte
	resets  int
	closed  bool
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.chunks) == 0 {
		if f.readErr != nil {
			return 0, f.readErr
		}
		return 0, ErrTimeout
	}
	n := copy(p, f.chunks[0])
	if n < len(f.chunks[0]) {
		f.chunks[0] = f.chunks[0][n:]
	} else {
		f.chunks = f.chunks[1:]
	}
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.written = append(f.written, p...)
	if f.answer != nil {
		f.chunks = append(f.chunks, f.answer)
	}
	return len(p), nil
}

func (f *fakePort) ResetInput() error {
	f.resets++
	f.chunks = nil
	return nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

// ---- tests ----

func TestReadLine_CRLF(t *testing.T) {
	p := &fakePort{chunks: [][]byte{[]byte("12"), []byte("3\r\n")}}
	l := NewLink("fake", p)

	line, err := l.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if string(line) != "123" {
		t.Fatalf("line mismatch: got=%q want=%q", line, "123")
	}
}

func TestDiscard_DropsLineAfterTerminator(t *testing.T) {
	p := &fakePort{chunks: [][]byte{[]byte("CS\r\n0001101\r\n")}, answer: []byte("42\r\n")}
	l := NewLink("fake", p)

	first, err := l.ReadLine()
	if err != nil || string(first) != "CS" {
		t.Fatalf("first line: got=%q err=%v", first, err)
	}

	if err := l.Discard(); err != nil {
		t.Fatalf("Discard err=%v", err)
	}
	if err := l.Write([]byte("POS\r")); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	line, err := l.ReadLine()
	if err != nil || string(line) != "42" {
		t.Fatalf("stale line served: got=%q err=%v want=%q", line, err, "42")
	}
}

func TestDiscard_FlushesDriverQueue(t *testing.T) {
	// a reply to a timed-out request still sits in the driver
	p := &fakePort{chunks: [][]byte{[]byte("0001101\r\n")}, answer: []byte("42\r\n")}
	l := NewLink("fake", p)

	if err := l.Discard(); err != nil {
		t.Fatalf("Discard err=%v", err)
	}
	if p.resets != 1 {
		t.Fatalf("driver queue not reset: resets=%d", p.resets)
	}
	_ = l.Write([]byte("POS\r"))
	line, _ := l.ReadLine()
	if string(line) != "42" {
		t.Fatalf("got=%q want=%q", line, "42")
	}
}

func TestDiscard_WithoutResetter(t *testing.T) {
	// only the line buffer can be dropped when the backend cannot flush
	l := NewLink("fake", struct{ Port }{&fakePort{chunks: [][]byte{[]byte("A\r\nB\r\n")}}})

	if line, _ := l.ReadLine(); string(line) != "A" {
		t.Fatalf("got=%q want=%q", line, "A")
	}
	if err := l.Discard(); err != nil {
		t.Fatalf("Discard err=%v", err)
	}
	if line, _ := l.ReadLine(); len(line) != 0 {
		t.Fatalf("buffered line survived Discard: %q", line)
	}
}

func TestReadLine_TimeoutYieldsEmpty(t *testing.T) {
	p := &fakePort{chunks: [][]byte{[]byte("12")}}
	l := NewLink("fake", p)

	line, err := l.ReadLine()
	if err != nil {
		t.Fatalf("timeout must not be an error, got %v", err)
	}
	if len(line) != 0 {
		t.Fatalf("expected empty line on timeout, got %q", line)
	}

	// partial bytes are discarded, not glued onto the next reply
	p.chunks = [][]byte{[]byte("7\r\n")}
	line, _ = l.ReadLine()
	if string(line) != "7" {
		t.Fatalf("stale bytes leaked: got=%q want=%q", line, "7")
	}
}

func TestReadLine_CROnlyCompletesOnTimeout(t *testing.T) {
	p := &fakePort{chunks: [][]byte{[]byte("CS-BX4\r")}}
	l := NewLink("fake", p)

	line, err := l.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine err=%v", err)
	}
	if string(line) != "CS-BX4" {
		t.Fatalf("line mismatch: got=%q want=%q", line, "CS-BX4")
	}
}

func TestReadLine_PropagatesPortError(t *testing.T) {
	boom := errors.New("device unplugged")
	l := NewLink("fake", &fakePort{readErr: boom})

	if _, err := l.ReadLine(); !errors.Is(err, boom) {
		t.Fatalf("expected port error, got %v", err)
	}
}

func TestWriteAndClose(t *testing.T) {
	p := &fakePort{}
	l := NewLink("fake", p)

	if err := l.Write([]byte("POS\r")); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	if string(p.written) != "POS\r" {
		t.Fatalf("written mismatch: got=%q", p.written)
	}
	if err := l.Close(); err != nil || !p.closed {
		t.Fatalf("Close err=%v closed=%v", err, p.closed)
	}
}

func TestOpen_RejectsBadConfig(t *testing.T) {
	cases := []Config{
		{Port: "", Baud: 9600, Timeout: time.Second},
		{Port: "/dev/null", Baud: 9601, Timeout: time.Second},
		{Port: "/dev/null", Baud: 9600, Timeout: 0},
		{Port: "/dev/null", Baud: 9600, Timeout: time.Second, Backend: "nope"},
	}

	for _, c := range cases {
		if _, err := Open(c); err == nil {
			t.Fatalf("expected error for %+v", c)
		}
	}
}

func TestKnownBackend(t *testing.T) {
	for _, name := range []string{"", BackendGoburrow, BackendTarm, BackendBugst} {
		if !KnownBackend(name) {
			t.Fatalf("backend %q should be known", name)
		}
	}
	if KnownBackend("rs485") {
		t.Fatalf("unexpected backend accepted")
	}
}
