// internal/status/register.go
package status

import "sort"

// Field is one named bit range of an integer register.
type Field struct {
	Name   string
	Offset uint
	Width  uint
}

// Layout is the field table of one integer register.
type Layout struct {
	Kind   Kind
	Fields []Field
}

// CharField is one digit position of a fixed-width status string.
type CharField struct {
	Name  string
	Index int
}

// CharLayout is the field table of a status string.
// Length is the full reply width; 0 means it is not fixed.
type CharLayout struct {
	Kind   Kind
	Length int
	Fields []CharField
}

// Register is a decoded register: field name to value.
// Width-1 fields read naturally through Bool.
type Register struct {
	Kind   Kind
	Raw    uint32
	fields map[string]uint32
}

// Bool reports whether the named field is non-zero.
// Unknown names read as false.
func (r Register) Bool(name string) bool {
	return r.fields[name] != 0
}

// Uint returns the named field value.
func (r Register) Uint(name string) uint32 {
	return r.fields[name]
}

// Has reports whether name is a field of this register.
func (r Register) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Names returns the field names in sorted order.
func (r Register) Names() []string {
	out := make([]string, 0, len(r.fields))
	for n := range r.fields {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Merge returns a register holding the fields of r and o.
// Fields of o win on name collision.
func (r Register) Merge(kind Kind, o Register) Register {
	out := Register{Kind: kind, fields: make(map[string]uint32, len(r.fields)+len(o.fields))}
	for k, v := range r.fields {
		out.fields[k] = v
	}
	for k, v := range o.fields {
		out.fields[k] = v
	}
	return out
}
