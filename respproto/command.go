package respproto

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Command represents one request: an ordered list of argument strings, the
// first of which names the server command. Arguments are opaque bytes and may
// contain anything, including CRLF.
type Command struct {
	Args []string
}

// Command constructors - these provide a clean API for creating commands.

// NewCommand creates a command from its arguments.
func NewCommand(args ...string) Command {
	return Command{Args: args}
}

// NewAuthCommand creates an AUTH command for the given password.
func NewAuthCommand(password string) Command {
	return Command{Args: []string{"AUTH", password}}
}

// Name returns the upper-cased command name, or "" for an empty command.
func (c Command) Name() string {
	if len(c.Args) == 0 {
		return ""
	}
	return strings.ToUpper(c.Args[0])
}

// Format returns the command as a human-readable line for logs. Arguments
// containing spaces or control characters are quoted.
func (c Command) Format() string {
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\r\n\"") {
			parts[i] = strconv.Quote(arg)
		} else {
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}

// EncodedLen returns the exact number of bytes the multi-bulk frame for this
// command occupies.
func (c Command) EncodedLen() int {
	return encodedLen(c.Args)
}

// Encode returns the multi-bulk frame for this command. A capacity of zero or
// less means no limit.
func (c Command) Encode(capacity int) ([]byte, error) {
	return EncodeCommand(c.Args, capacity)
}

// EncodeCommand serializes args into a RESP multi-bulk request frame:
//
//	*<argc>\r\n$<len>\r\n<arg>\r\n...
//
// The full frame length is computed before anything is written. If it would
// exceed capacity, ErrCapacityExceeded is returned and no frame is produced.
// A capacity of zero or less means no limit. An empty args slice is
// rejected with ErrInvalidArgument.
func EncodeCommand(args []string, capacity int) ([]byte, error) {
	if len(args) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "command has no arguments")
	}

	total := encodedLen(args)
	if capacity > 0 && total > capacity {
		return nil, errors.Wrapf(ErrCapacityExceeded, "frame needs %d bytes, capacity is %d", total, capacity)
	}

	buf := make([]byte, 0, total)
	buf = append(buf, TagArray)
	buf = strconv.AppendInt(buf, int64(len(args)), 10)
	buf = append(buf, CRLF...)
	for _, arg := range args {
		buf = append(buf, TagBulkString)
		buf = strconv.AppendInt(buf, int64(len(arg)), 10)
		buf = append(buf, CRLF...)
		buf = append(buf, arg...)
		buf = append(buf, CRLF...)
	}
	return buf, nil
}

// encodedLen computes the frame size without building it.
func encodedLen(args []string) int {
	n := 1 + decimalLen(len(args)) + len(CRLF)
	for _, arg := range args {
		n += 1 + decimalLen(len(arg)) + len(CRLF) + len(arg) + len(CRLF)
	}
	return n
}

// decimalLen returns the number of ASCII digits in a non-negative integer.
func decimalLen(v int) int {
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}
