package respproto

import (
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// DecoderOptions holds the sanity ceilings a Decoder enforces. Zero fields
// take the package defaults.
type DecoderOptions struct {
	MaxLineLength   int // MaxLineLength
	MaxBulkLength   int // MaxBulkLength
	MaxArrayCount   int // MaxArrayCount
	MaxNestingDepth int // MaxNestingDepth
}

func (o DecoderOptions) withDefaults() DecoderOptions {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = MaxLineLength
	}
	if o.MaxBulkLength <= 0 {
		o.MaxBulkLength = MaxBulkLength
	}
	if o.MaxArrayCount <= 0 {
		o.MaxArrayCount = MaxArrayCount
	}
	if o.MaxNestingDepth <= 0 {
		o.MaxNestingDepth = MaxNestingDepth
	}
	return o
}

// Decoder reads RESP replies from a byte stream.
type Decoder struct {
	r    *Reader
	opts DecoderOptions
}

// NewDecoder creates a decoder over r with default limits.
func NewDecoder(r io.Reader) *Decoder {
	return NewDecoderWithOptions(r, DecoderOptions{})
}

// NewDecoderWithOptions creates a decoder over r with the given limits.
func NewDecoderWithOptions(r io.Reader, opts DecoderOptions) *Decoder {
	opts = opts.withDefaults()
	return &Decoder{
		r:    NewReaderSize(r, opts.MaxLineLength),
		opts: opts,
	}
}

// Decode reads exactly one complete reply, including every nested element of
// an array, and blocks until it has done so or an error occurs.
//
// Malformed or out-of-range data yields a *ProtocolError; a failing or
// closed stream yields a *ConnectionError. After a ProtocolError the stream
// position is unspecified.
func (d *Decoder) Decode() (Reply, error) {
	return d.decode(0)
}

func (d *Decoder) decode(depth int) (Reply, error) {
	tag, err := d.r.ReadByte()
	if err != nil {
		return Reply{}, err
	}

	switch tag {
	case TagSimpleString:
		line, err := d.r.ReadLine()
		if err != nil {
			return Reply{}, err
		}
		return NewSimpleStringReply(line), nil

	case TagError:
		line, err := d.r.ReadLine()
		if err != nil {
			return Reply{}, err
		}
		return NewErrorReply(line), nil

	case TagInteger:
		line, err := d.r.ReadLine()
		if err != nil {
			return Reply{}, err
		}
		return NewIntegerReply(line), nil

	case TagBulkString:
		return d.decodeBulk()

	case TagArray:
		return d.decodeArray(depth)

	default:
		return Reply{}, newUnknownTypeTagError(tag)
	}
}

func (d *Decoder) decodeBulk() (Reply, error) {
	line, err := d.r.ReadLine()
	if err != nil {
		return Reply{}, err
	}

	length, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return Reply{}, newInvalidBulkLengthError(line)
	}
	if length == NilLength {
		return NewNilBulkReply(), nil
	}
	if length < 0 || length > int64(d.opts.MaxBulkLength) {
		return Reply{}, newInvalidBulkLengthError(line)
	}

	n := int(length)
	data, err := d.r.ReadExactly(n + len(CRLF))
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Reply{}, newTruncatedBulkError(n+len(CRLF), err)
		}
		return Reply{}, err
	}
	if data[n] != '\r' || data[n+1] != '\n' {
		return Reply{}, newMalformedBulkTerminatorError(data[n:])
	}
	return NewBulkReply(data[:n:n]), nil
}

func (d *Decoder) decodeArray(depth int) (Reply, error) {
	line, err := d.r.ReadLine()
	if err != nil {
		return Reply{}, err
	}

	count, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return Reply{}, newInvalidArrayCountError(line)
	}
	if count == NilLength {
		return NewNilArrayReply(), nil
	}
	if count < 0 || count > int64(d.opts.MaxArrayCount) {
		return Reply{}, newInvalidArrayCountError(line)
	}
	if depth+1 > d.opts.MaxNestingDepth {
		return Reply{}, newNestingTooDeepError(d.opts.MaxNestingDepth)
	}

	elems := make([]Reply, 0, count)
	for i := int64(0); i < count; i++ {
		elem, err := d.decode(depth + 1)
		if err != nil {
			return Reply{}, err
		}
		elems = append(elems, elem)
	}
	return NewArrayReply(elems), nil
}
