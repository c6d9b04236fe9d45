package respproto

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Reader provides the two blocking primitives the decoder needs on top of a
// byte stream: read exactly n bytes, and read one CRLF-terminated line.
//
// Each Reader owns its line buffer, sized to its maximum line length, so
// separate Readers never share state.
type Reader struct {
	br      *bufio.Reader
	maxLine int
	line    []byte
}

// NewReader wraps r with the default maximum line length.
func NewReader(r io.Reader) *Reader {
	return NewReaderSize(r, MaxLineLength)
}

// NewReaderSize wraps r with the given maximum line length in bytes,
// terminator included. Values below 3 fall back to MaxLineLength.
func NewReaderSize(r io.Reader, maxLine int) *Reader {
	if maxLine < 3 {
		maxLine = MaxLineLength
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{
		br:      br,
		maxLine: maxLine,
		line:    make([]byte, 0, maxLine),
	}
}

// MaxLine returns the maximum line length this reader accepts.
func (r *Reader) MaxLine() int {
	return r.maxLine
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.br.ReadByte()
	if err != nil {
		return 0, NewConnectionError("read failed", err)
	}
	return b, nil
}

// ReadExactly reads exactly n bytes into a newly allocated slice owned by the
// caller. A stream that ends early yields a ConnectionError wrapping
// io.ErrUnexpectedEOF (or io.EOF if nothing was read); short reads are never
// returned.
func (r *Reader) ReadExactly(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "negative read size %d", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return nil, NewConnectionError("read failed", err)
	}
	return buf, nil
}

// ReadLine reads up to and including the next CRLF and returns the text
// before it. A lone LF not preceded by CR is part of the line. If the line,
// terminator included, grows past the maximum length a ProtocolError of kind
// ErrKindLineTooLong is returned; the rest of that line is left unread.
func (r *Reader) ReadLine() (string, error) {
	r.line = r.line[:0]
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			if err == io.EOF && len(r.line) > 0 {
				err = io.ErrUnexpectedEOF
			}
			return "", NewConnectionError("read failed", err)
		}
		if len(r.line) >= r.maxLine {
			return "", newLineTooLongError(r.maxLine)
		}
		r.line = append(r.line, b)

		n := len(r.line)
		if n >= 2 && r.line[n-2] == '\r' && r.line[n-1] == '\n' {
			return string(r.line[:n-2]), nil
		}
	}
}
