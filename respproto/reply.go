package respproto

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
)

// ReplyType represents the kind of reply received from the server.
type ReplyType int

const (
	// ReplySimpleString is a short status line such as OK.
	ReplySimpleString ReplyType = iota
	// ReplyError is a server-reported failure.
	ReplyError
	// ReplyInteger is numeric text, carried verbatim.
	ReplyInteger
	// ReplyBulkString is a length-prefixed byte payload, possibly nil.
	ReplyBulkString
	// ReplyArray is an ordered list of nested replies, possibly nil.
	ReplyArray
)

// String returns the name of the reply type.
func (t ReplyType) String() string {
	switch t {
	case ReplySimpleString:
		return "simple-string"
	case ReplyError:
		return "error"
	case ReplyInteger:
		return "integer"
	case ReplyBulkString:
		return "bulk-string"
	case ReplyArray:
		return "array"
	default:
		return "unknown"
	}
}

// Reply represents one decoded server reply. Only the fields relevant to
// Type are populated. Replies are plain values; nothing mutates them after
// decoding.
type Reply struct {
	Type ReplyType

	Text  string  // For simple string, error and integer
	Bulk  []byte  // For bulk string
	Elems []Reply // For array
	Nil   bool    // For bulk string and array: $-1 / *-1
}

// Reply constructors.

// NewSimpleStringReply creates a simple string reply.
func NewSimpleStringReply(text string) Reply {
	return Reply{Type: ReplySimpleString, Text: text}
}

// NewErrorReply creates an error reply with the given message.
func NewErrorReply(text string) Reply {
	return Reply{Type: ReplyError, Text: text}
}

// NewIntegerReply creates an integer reply from its decimal text.
func NewIntegerReply(text string) Reply {
	return Reply{Type: ReplyInteger, Text: text}
}

// NewBulkReply creates a non-nil bulk string reply.
func NewBulkReply(data []byte) Reply {
	if data == nil {
		data = []byte{}
	}
	return Reply{Type: ReplyBulkString, Bulk: data}
}

// NewNilBulkReply creates the nil bulk string reply ($-1).
func NewNilBulkReply() Reply {
	return Reply{Type: ReplyBulkString, Nil: true}
}

// NewArrayReply creates a non-nil array reply.
func NewArrayReply(elems []Reply) Reply {
	if elems == nil {
		elems = []Reply{}
	}
	return Reply{Type: ReplyArray, Elems: elems}
}

// NewNilArrayReply creates the nil array reply (*-1).
func NewNilArrayReply() Reply {
	return Reply{Type: ReplyArray, Nil: true}
}

// IsError returns true if this is an error reply.
func (r Reply) IsError() bool {
	return r.Type == ReplyError
}

// IsNil returns true for the nil bulk string and nil array.
func (r Reply) IsNil() bool {
	return r.Nil
}

// IsOK returns true for the simple string reply OK.
func (r Reply) IsOK() bool {
	return r.Type == ReplySimpleString && r.Text == "OK"
}

// Int parses the text of an integer reply.
func (r Reply) Int() (int64, error) {
	if r.Type != ReplyInteger {
		return 0, newUnexpectedResponseError(r.Type.String())
	}
	return strconv.ParseInt(r.Text, 10, 64)
}

// String returns the payload text: the line for simple strings, errors and
// integers, the bytes for bulk strings. Nil and arrays return "".
func (r Reply) String() string {
	switch r.Type {
	case ReplySimpleString, ReplyError, ReplyInteger:
		return r.Text
	case ReplyBulkString:
		return string(r.Bulk)
	default:
		return ""
	}
}

// Format returns the reply rendered for a terminal:
//
//	simple string, integer   text as-is
//	error                    (error) <text>
//	nil                      (nil)
//	bulk string              bytes as text
//	array                    "1) ", "2) " ... before each element
//
// Nested array elements continue on the same line as their parent's index
// prefix. The result always ends with a newline.
func (r Reply) Format() string {
	var buf bytes.Buffer
	r.WriteTo(&buf)
	return buf.String()
}

// WriteTo writes the Format rendering of the reply to w.
func (r Reply) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	r.render(cw)
	return cw.n, cw.err
}

func (r Reply) render(w *countingWriter) {
	switch r.Type {
	case ReplySimpleString, ReplyInteger:
		w.printf("%s\n", r.Text)
	case ReplyError:
		w.printf("(error) %s\n", r.Text)
	case ReplyBulkString:
		if r.Nil {
			w.printf("(nil)\n")
			return
		}
		w.printf("%s\n", r.Bulk)
	case ReplyArray:
		if r.Nil {
			w.printf("(nil)\n")
			return
		}
		if len(r.Elems) == 0 {
			w.printf("(empty array)\n")
			return
		}
		for i, elem := range r.Elems {
			w.printf("%d) ", i+1)
			elem.render(w)
		}
	default:
		w.printf("(unknown reply)\n")
	}
}

// countingWriter tracks bytes written and keeps the first error.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}
