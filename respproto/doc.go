// Package respproto provides a Go implementation of the RESP request/reply
// protocol spoken by Redis-compatible key-value servers, together with a
// small synchronous client built on top of it.
//
// # Protocol Overview
//
// RESP is a length-prefixed, text-framed protocol carried over a TCP stream.
// Requests are always sent as a multi-bulk frame:
//
//	*<argc>\r\n
//	$<len>\r\n<bytes>\r\n     (once per argument)
//
// Replies start with a one-byte type tag:
//
//	+<text>\r\n               simple string
//	-<text>\r\n               error
//	:<text>\r\n               integer
//	$<len>\r\n<bytes>\r\n     bulk string ($-1\r\n is nil)
//	*<count>\r\n<replies...>  array (*-1\r\n is nil)
//
// # Basic Usage
//
//	client := respproto.NewClient()
//	if err := client.Connect(respproto.Address("127.0.0.1", 6379)); err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	reply, err := client.Do("SET", "greeting", "hello world")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(reply.Format())
//
// # Parsing Commands
//
// To turn a line of user input into a command:
//
//	parser := respproto.NewCommandParser()
//	cmd, err := parser.Parse(`SET "my key" value`)
//	if errors.Is(err, respproto.ErrInvalidArgument) {
//	    // blank line, nothing to send
//	}
//
// # Decoding Without a Client
//
// The codec pieces are usable on any io.Reader:
//
//	dec := respproto.NewDecoder(conn)
//	reply, err := dec.Decode()
//
// # Thread Safety
//
// A Client serializes requests with a mutex, so only one request is ever in
// flight per connection. Decoder and Reader values are not safe for
// concurrent use; each owns its own line buffer.
package respproto
