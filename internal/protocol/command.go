// internal/protocol/command.go
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Terminator ends every request on the wire.
const Terminator = '\r'

// Command is one request: a mnemonic and an optional decimal argument.
type Command struct {
	Mnemonic string
	Arg      int
	HasArg   bool
}

// Cmd builds a command without argument.
func Cmd(mnemonic string) Command {
	return Command{Mnemonic: mnemonic}
}

// CmdArg builds a command carrying a decimal argument.
func CmdArg(mnemonic string, arg int) Command {
	return Command{Mnemonic: mnemonic, Arg: arg, HasArg: true}
}

func (c Command) String() string {
	if !c.HasArg {
		return c.Mnemonic
	}
	return c.Mnemonic + strconv.Itoa(c.Arg)
}

// Encode renders the wire form MNEMONIC[ARG]\r.
func Encode(c Command) []byte {
	out := make([]byte, 0, len(c.Mnemonic)+12)
	out = append(out, c.Mnemonic...)
	if c.HasArg {
		out = strconv.AppendInt(out, int64(c.Arg), 10)
	}
	return append(out, Terminator)
}

// Parse is the inverse of Encode. The trailing terminator is optional.
// The mnemonic is the leading run of characters before the first digit or sign.
func Parse(b []byte) (Command, error) {
	s := strings.TrimSuffix(string(b), string(Terminator))
	if s == "" {
		return Command{}, errors.New("protocol: empty command")
	}

	i := strings.IndexAny(s, "+-0123456789")
	if i == 0 {
		return Command{}, fmt.Errorf("protocol: command %q has no mnemonic", s)
	}
	if i < 0 {
		return Cmd(s), nil
	}

	arg, err := strconv.Atoi(s[i:])
	if err != nil {
		return Command{}, fmt.Errorf("protocol: command %q: bad argument: %w", s, err)
	}
	return CmdArg(s[:i], arg), nil
}
