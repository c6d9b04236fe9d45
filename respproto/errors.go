package respproto

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors for the RESP codec and client.
var (
	// ErrInvalidArgument indicates malformed local input, such as a command
	// with no arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCapacityExceeded indicates an encoded request would not fit in the
	// configured output capacity.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrNotConnected indicates an operation was attempted without a connection.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates connect was called while already connected.
	ErrAlreadyConnected = errors.New("already connected")
)

// ProtocolError represents malformed or out-of-bounds data received from the
// server. The connection may still be usable; that is up to the caller.
type ProtocolError struct {
	Kind  ProtocolErrorKind
	Value string // The offending text, if any
	Cause error  // Underlying error, if any
}

// ProtocolErrorKind categorizes protocol errors.
type ProtocolErrorKind int

const (
	// ErrKindUnknownTypeTag indicates a reply started with an unrecognized byte.
	ErrKindUnknownTypeTag ProtocolErrorKind = iota
	// ErrKindInvalidBulkLength indicates a malformed or out-of-range bulk length.
	ErrKindInvalidBulkLength
	// ErrKindInvalidArrayCount indicates a malformed or out-of-range array count.
	ErrKindInvalidArrayCount
	// ErrKindTruncatedBulk indicates the stream closed inside a bulk payload.
	ErrKindTruncatedBulk
	// ErrKindMalformedBulkTerminator indicates a bulk payload was not followed by CRLF.
	ErrKindMalformedBulkTerminator
	// ErrKindLineTooLong indicates a line exceeded the reader's maximum length.
	ErrKindLineTooLong
	// ErrKindNestingTooDeep indicates arrays nested beyond the decoder's limit.
	ErrKindNestingTooDeep
	// ErrKindUnexpectedResponse indicates a well-formed reply of the wrong kind.
	ErrKindUnexpectedResponse
)

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	switch e.Kind {
	case ErrKindUnknownTypeTag:
		return fmt.Sprintf("protocol error: unknown type tag %q", e.Value)
	case ErrKindInvalidBulkLength:
		return fmt.Sprintf("protocol error: invalid bulk length '%s'", e.Value)
	case ErrKindInvalidArrayCount:
		return fmt.Sprintf("protocol error: invalid array count '%s'", e.Value)
	case ErrKindTruncatedBulk:
		return fmt.Sprintf("protocol error: truncated bulk (expected %s bytes)", e.Value)
	case ErrKindMalformedBulkTerminator:
		return fmt.Sprintf("protocol error: malformed bulk terminator %q", e.Value)
	case ErrKindLineTooLong:
		return fmt.Sprintf("protocol error: line too long (limit %s bytes)", e.Value)
	case ErrKindNestingTooDeep:
		return fmt.Sprintf("protocol error: nesting too deep (limit %s)", e.Value)
	case ErrKindUnexpectedResponse:
		return fmt.Sprintf("protocol error: unexpected response: %s", e.Value)
	default:
		return fmt.Sprintf("protocol error: %s", e.Value)
	}
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// Helper functions to create specific protocol errors.

func newUnknownTypeTagError(tag byte) error {
	return &ProtocolError{Kind: ErrKindUnknownTypeTag, Value: string([]byte{tag})}
}

func newInvalidBulkLengthError(length string) error {
	return &ProtocolError{Kind: ErrKindInvalidBulkLength, Value: length}
}

func newInvalidArrayCountError(count string) error {
	return &ProtocolError{Kind: ErrKindInvalidArrayCount, Value: count}
}

func newTruncatedBulkError(expected int, cause error) error {
	return &ProtocolError{Kind: ErrKindTruncatedBulk, Value: fmt.Sprint(expected), Cause: cause}
}

func newMalformedBulkTerminatorError(terminator []byte) error {
	return &ProtocolError{Kind: ErrKindMalformedBulkTerminator, Value: string(terminator)}
}

func newLineTooLongError(limit int) error {
	return &ProtocolError{Kind: ErrKindLineTooLong, Value: fmt.Sprint(limit)}
}

func newNestingTooDeepError(limit int) error {
	return &ProtocolError{Kind: ErrKindNestingTooDeep, Value: fmt.Sprint(limit)}
}

func newUnexpectedResponseError(resp string) error {
	return &ProtocolError{Kind: ErrKindUnexpectedResponse, Value: resp}
}

// IsProtocolError reports whether err is, or wraps, a *ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// ConnectionError represents a connection-level failure: the stream closed,
// was reset, or a read or write failed. It is generally fatal to the session.
type ConnectionError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("connection failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("connection failed: %s", e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConnectionError) Unwrap() error {
	return e.Cause
}

// NewConnectionError creates a new connection error.
func NewConnectionError(message string, cause error) error {
	return &ConnectionError{Message: message, Cause: cause}
}

// IsConnectionError reports whether err is, or wraps, a *ConnectionError.
func IsConnectionError(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}

// AuthError is returned by Client.Auth when the server rejects the password.
type AuthError struct {
	Message string // Server error text, e.g. "WRONGPASS invalid username-password pair"
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Message)
}
