package respproto

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeString(t *testing.T, input string) (Reply, error) {
	t.Helper()
	return NewDecoder(strings.NewReader(input)).Decode()
}

func requireProtocolError(t *testing.T, err error, kind ProtocolErrorKind) {
	t.Helper()
	var pe *ProtocolError
	require.True(t, errors.As(err, &pe), "expected ProtocolError, got %v", err)
	assert.Equal(t, kind, pe.Kind, "error: %v", err)
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Reply
	}{
		{"simple string", "+OK\r\n", NewSimpleStringReply("OK")},
		{"empty simple string", "+\r\n", NewSimpleStringReply("")},
		{"error", "-ERR wrong type\r\n", NewErrorReply("ERR wrong type")},
		{"integer", ":1000\r\n", NewIntegerReply("1000")},
		{"negative integer", ":-42\r\n", NewIntegerReply("-42")},
		{"integer text kept verbatim", ":007\r\n", NewIntegerReply("007")},
		{"bulk", "$5\r\nhello\r\n", NewBulkReply([]byte("hello"))},
		{"empty bulk", "$0\r\n\r\n", NewBulkReply([]byte{})},
		{"nil bulk", "$-1\r\n", NewNilBulkReply()},
		{"nil array", "*-1\r\n", NewNilArrayReply()},
		{"empty array", "*0\r\n", NewArrayReply([]Reply{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeString(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeErrorIsDistinctFromSimpleString(t *testing.T) {
	got, err := decodeString(t, "-ERR wrong type\r\n")
	require.NoError(t, err)
	assert.Equal(t, ReplyError, got.Type)
	assert.True(t, got.IsError())
	assert.Equal(t, "ERR wrong type", got.Text)
}

func TestDecodeNilConsumesNothingMore(t *testing.T) {
	src := strings.NewReader("$-1\r\n+NEXT\r\n")
	dec := NewDecoder(src)

	got, err := dec.Decode()
	require.NoError(t, err)
	assert.True(t, got.IsNil())
	assert.Equal(t, ReplyBulkString, got.Type)

	next, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, NewSimpleStringReply("NEXT"), next)
}

func TestDecodeNilArrayDistinctFromEmpty(t *testing.T) {
	nilArr, err := decodeString(t, "*-1\r\n")
	require.NoError(t, err)
	empty, err := decodeString(t, "*0\r\n")
	require.NoError(t, err)

	assert.True(t, nilArr.IsNil())
	assert.False(t, empty.IsNil())
	assert.NotNil(t, empty.Elems)
}

func TestDecodeBinaryBulk(t *testing.T) {
	got, err := decodeString(t, "$4\r\na\r\nb\r\n")
	require.NoError(t, err)
	assert.Equal(t, []byte("a\r\nb"), got.Bulk)
}

func TestDecodeArrayOfIntegers(t *testing.T) {
	got, err := decodeString(t, "*2\r\n:1\r\n:2\r\n")
	require.NoError(t, err)
	require.Equal(t, ReplyArray, got.Type)
	require.Len(t, got.Elems, 2)
	assert.Equal(t, NewIntegerReply("1"), got.Elems[0])
	assert.Equal(t, NewIntegerReply("2"), got.Elems[1])
}

func TestDecodeMixedNestedArray(t *testing.T) {
	input := "*4\r\n+OK\r\n$3\r\nfoo\r\n*2\r\n:7\r\n$-1\r\n-ERR x\r\n"
	got, err := decodeString(t, input)
	require.NoError(t, err)

	expected := NewArrayReply([]Reply{
		NewSimpleStringReply("OK"),
		NewBulkReply([]byte("foo")),
		NewArrayReply([]Reply{NewIntegerReply("7"), NewNilBulkReply()}),
		NewErrorReply("ERR x"),
	})
	assert.Equal(t, expected, got)
}

func TestDecodeChunkedStream(t *testing.T) {
	input := "*3\r\n$3\r\nfoo\r\n$-1\r\n$11\r\nhello world\r\n"
	dec := NewDecoder(&chunkReader{data: []byte(input), chunkSize: 1})

	got, err := dec.Decode()
	require.NoError(t, err)
	require.Len(t, got.Elems, 3)
	assert.Equal(t, "foo", got.Elems[0].String())
	assert.True(t, got.Elems[1].IsNil())
	assert.Equal(t, "hello world", got.Elems[2].String())
}

func TestDecodeUnknownTag(t *testing.T) {
	_, err := decodeString(t, "?what\r\n")
	requireProtocolError(t, err, ErrKindUnknownTypeTag)
}

func TestDecodeInvalidBulkLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too large", "$2000000\r\n"},
		{"just over ceiling", "$1048577\r\n"},
		{"negative", "$-2\r\n"},
		{"not a number", "$abc\r\n"},
		{"empty", "$\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeString(t, tt.input)
			requireProtocolError(t, err, ErrKindInvalidBulkLength)
		})
	}
}

func TestDecodeBulkAtCeiling(t *testing.T) {
	payload := bytes.Repeat([]byte{'x'}, MaxBulkLength)
	input := "$1048576\r\n" + string(payload) + "\r\n"

	got, err := decodeString(t, input)
	require.NoError(t, err)
	assert.Len(t, got.Bulk, MaxBulkLength)
}

func TestDecodeInvalidArrayCount(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"too large", "*10001\r\n"},
		{"negative", "*-5\r\n"},
		{"not a number", "*x\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeString(t, tt.input)
			requireProtocolError(t, err, ErrKindInvalidArrayCount)
		})
	}
}

func TestDecodeTruncatedBulk(t *testing.T) {
	_, err := decodeString(t, "$5\r\nab")
	requireProtocolError(t, err, ErrKindTruncatedBulk)
	assert.True(t, IsConnectionError(err), "truncation should wrap the read failure: %v", err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestDecodeTruncatedArray(t *testing.T) {
	_, err := decodeString(t, "*3\r\n:1\r\n")
	assert.True(t, IsConnectionError(err), "got %v", err)
}

func TestDecodeEmptyStream(t *testing.T) {
	_, err := decodeString(t, "")
	assert.True(t, IsConnectionError(err), "got %v", err)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestDecodeMalformedBulkTerminator(t *testing.T) {
	_, err := decodeString(t, "$3\r\nfooXY")
	requireProtocolError(t, err, ErrKindMalformedBulkTerminator)
}

func TestDecodeLineTooLong(t *testing.T) {
	input := "+" + strings.Repeat("a", MaxLineLength) + "\r\n"
	_, err := decodeString(t, input)
	requireProtocolError(t, err, ErrKindLineTooLong)
}

func TestDecodeNestingDepth(t *testing.T) {
	nested := func(depth int) string {
		return strings.Repeat("*1\r\n", depth) + ":1\r\n"
	}

	got, err := decodeString(t, nested(MaxNestingDepth))
	require.NoError(t, err)
	for i := 0; i < MaxNestingDepth; i++ {
		require.Equal(t, ReplyArray, got.Type)
		got = got.Elems[0]
	}
	assert.Equal(t, NewIntegerReply("1"), got)

	_, err = decodeString(t, nested(MaxNestingDepth+1))
	requireProtocolError(t, err, ErrKindNestingTooDeep)
}

func TestDecoderOptions(t *testing.T) {
	opts := DecoderOptions{MaxBulkLength: 4, MaxArrayCount: 2, MaxNestingDepth: 1}

	_, err := NewDecoderWithOptions(strings.NewReader("$5\r\nhello\r\n"), opts).Decode()
	requireProtocolError(t, err, ErrKindInvalidBulkLength)

	_, err = NewDecoderWithOptions(strings.NewReader("*3\r\n"), opts).Decode()
	requireProtocolError(t, err, ErrKindInvalidArrayCount)

	_, err = NewDecoderWithOptions(strings.NewReader("*1\r\n*1\r\n:1\r\n"), opts).Decode()
	requireProtocolError(t, err, ErrKindNestingTooDeep)

	got, err := NewDecoderWithOptions(strings.NewReader("*1\r\n$4\r\nabcd\r\n"), opts).Decode()
	require.NoError(t, err)
	assert.Equal(t, "abcd", got.Elems[0].String())
}

func TestDecodeSequentialReplies(t *testing.T) {
	dec := NewDecoder(strings.NewReader("+OK\r\n:3\r\n$3\r\nbar\r\n"))

	for _, want := range []string{"OK", "3", "bar"} {
		got, err := dec.Decode()
		require.NoError(t, err)
		assert.Equal(t, want, got.String())
	}
}
