// internal/status/encode.go
package status

import (
	"errors"
	"fmt"
)

var (
	// ErrShort means a status string ends before a field's index.
	ErrShort = errors.New("status: reply too short")
	// ErrNotDigit means a status character is not a decimal digit.
	ErrNotDigit = errors.New("status: not a digit")
)

func mask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return (uint32(1) << width) - 1
}

// Decode slices raw into the fields of l.
// Bits not covered by the table are ignored.
// No IO. No side effects.
func Decode(l Layout, raw uint32) Register {
	r := Register{
		Kind:   l.Kind,
		Raw:    raw,
		fields: make(map[string]uint32, len(l.Fields)),
	}
	for _, f := range l.Fields {
		r.fields[f.Name] = (raw >> f.Offset) & mask(f.Width)
	}
	return r
}

// Encode packs field values into a raw integer according to l.
// Values wider than their field are truncated; unknown names are ignored.
func Encode(l Layout, values map[string]uint32) uint32 {
	var raw uint32
	for _, f := range l.Fields {
		v, ok := values[f.Name]
		if !ok {
			continue
		}
		raw |= (v & mask(f.Width)) << f.Offset
	}
	return raw
}

// DecodeChars reads every field of l out of a digit status string.
// The reply must reach the highest field index; a fixed Length is not
// enforced here, see DecodeChar and the callers that need it.
func DecodeChars(l CharLayout, reply string) (Register, error) {
	r := Register{
		Kind:   l.Kind,
		fields: make(map[string]uint32, len(l.Fields)),
	}
	for _, f := range l.Fields {
		v, err := charAt(reply, f)
		if err != nil {
			return Register{}, err
		}
		r.fields[f.Name] = v
	}
	return r, nil
}

// DecodeChar reads a single named field of l out of reply.
func DecodeChar(l CharLayout, reply, name string) (uint32, error) {
	for _, f := range l.Fields {
		if f.Name == name {
			return charAt(reply, f)
		}
	}
	return 0, fmt.Errorf("status: %s has no field %q", l.Kind, name)
}

func charAt(reply string, f CharField) (uint32, error) {
	if f.Index >= len(reply) {
		return 0, fmt.Errorf("%w: field %s at %d, length %d", ErrShort, f.Name, f.Index, len(reply))
	}
	c := reply[f.Index]
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("%w: field %s is %q", ErrNotDigit, f.Name, c)
	}
	return uint32(c - '0'), nil
}
