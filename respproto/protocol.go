// Package respproto implements the RESP wire protocol used between the CLI
// and a Redis-compatible server.
//
// Protocol Format:
//
//	Request (CLI -> Server):   *<argc>\r\n then $<len>\r\n<bytes>\r\n per argument
//	Simple String:             +<text>\r\n
//	Error:                     -<text>\r\n
//	Integer:                   :<text>\r\n
//	Bulk String:               $<len>\r\n<bytes>\r\n  or  $-1\r\n
//	Array:                     *<count>\r\n<replies>  or  *-1\r\n
//
// Example Session:
//
//	CLI: *3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nvalue\r\n
//	SRV: +OK\r\n
//	CLI: *2\r\n$3\r\nGET\r\n$3\r\nkey\r\n
//	SRV: $5\r\nvalue\r\n
package respproto

import (
	"net"
	"strconv"
	"time"
)

// Type tags that open every RESP frame.
const (
	TagSimpleString byte = '+'
	TagError        byte = '-'
	TagInteger      byte = ':'
	TagBulkString   byte = '$'
	TagArray        byte = '*'
)

// Protocol constants.
const (
	// CRLF terminates every header line and every bulk payload.
	CRLF = "\r\n"

	// NilLength is the length (or count) announcing a nil bulk string or array.
	NilLength = -1

	// MaxArgs is the most arguments the tokenizer will produce from one line.
	// Anything after the 64th argument is dropped.
	MaxArgs = 64

	// MaxLineLength is the maximum allowed length for a reply header or
	// simple line in bytes, terminator included.
	MaxLineLength = 4096

	// MaxBulkLength is the largest bulk string payload the decoder accepts (1 MiB).
	MaxBulkLength = 1 << 20

	// MaxArrayCount is the largest array element count the decoder accepts.
	MaxArrayCount = 10000

	// MaxNestingDepth bounds how deeply arrays may nest inside one reply.
	MaxNestingDepth = 32

	// DefaultRequestCapacity is the default output capacity for one encoded
	// request frame in bytes.
	DefaultRequestCapacity = 4096

	// DefaultHost is the server host used when none is configured.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the server port used when none is configured.
	DefaultPort = 6379

	// ConnectionTimeout is the timeout for establishing connections.
	ConnectionTimeout = 5 * time.Second
)

// Address joins a host and port into a dialable TCP address.
func Address(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
