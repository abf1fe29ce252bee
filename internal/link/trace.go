// internal/link/trace.go
package link

import "log"

var traceEnabled = false

// EnableTrace toggles logging of every line written to or read from a link.
func EnableTrace(enable bool) {
	traceEnabled = enable
}

func trace(dir, port string, b []byte) {
	if traceEnabled {
		log.Printf("link %s %q (port=%s)", dir, b, port)
	}
}
