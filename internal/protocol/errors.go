// internal/protocol/errors.go
package protocol

import "fmt"

// LinkError is a transport failure while writing or reading.
type LinkError struct {
	Op  string // "write" or "read"
	Err error
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("protocol: link %s: %v", e.Op, e.Err)
}

func (e *LinkError) Unwrap() error { return e.Err }

// Reason classifies a DecodeError.
type Reason int

const (
	ReasonMalformed Reason = iota + 1 // reply is not of the expected type
	ReasonEmpty                       // no reply before the link timeout
	ReasonShort                       // status string shorter than the field index
	ReasonLength                      // status string length differs from the fixed width
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformed:
		return "malformed reply"
	case ReasonEmpty:
		return "empty reply"
	case ReasonShort:
		return "short reply"
	case ReasonLength:
		return "unexpected reply length"
	default:
		return "unknown"
	}
}

// DecodeError reports a reply that arrived but could not be decoded.
// The raw reply is kept for diagnostics.
type DecodeError struct {
	Command Command
	Reply   string
	Reason  Reason
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %s %q: %v", e.Command, e.Reason, e.Reply, e.Err)
	}
	return fmt.Sprintf("protocol: %s: %s %q", e.Command, e.Reason, e.Reply)
}

func (e *DecodeError) Unwrap() error { return e.Err }
