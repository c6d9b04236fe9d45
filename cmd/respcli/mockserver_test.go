// =============================================================================
// mockserver_test.go - Mock RESP Server for Testing
// =============================================================================
//
// GO CONCEPT: Test Helpers (Shared Test Infrastructure)
// -----------------------------------------------------
// Go test files (*_test.go) are ONLY compiled during testing. They can
// define helper types and functions used across multiple test files in the
// same package. This file provides a mock key-value server that listens on
// a loopback TCP port and speaks RESP, so the CLI can be tested without a
// real server.
//
// Requests are decoded with github.com/tidwall/resp rather than with our own
// respproto decoder, so a bug in our encoder cannot hide behind the same bug
// in our decoder.
//
// =============================================================================

package main

import (
	"bufio"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/respcli/respcli/respproto"
	"github.com/tidwall/resp"
)

// mockHandler answers one decoded request with a raw RESP reply. Returning
// "" makes the server drop the connection without replying.
type mockHandler func(args []string) string

// mockServer is a lightweight RESP server for testing.
//
// GO CONCEPT: struct with sync.Mutex
// -----------------------------------
// The accept loop and the per-connection goroutines append to received
// while the test goroutine reads it, so access goes through mu.
type mockServer struct {
	listener net.Listener
	handler  mockHandler

	mu       sync.Mutex
	received [][]string
	conns    []net.Conn
}

// startMockServer listens on 127.0.0.1 with an OS-assigned port and serves
// until the test ends.
func startMockServer(t *testing.T, handler mockHandler) *mockServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	ms := &mockServer{listener: listener, handler: handler}
	go ms.acceptLoop()

	t.Cleanup(ms.close)
	return ms
}

// addr returns the host:port the server listens on.
func (ms *mockServer) addr() string {
	return ms.listener.Addr().String()
}

// requests returns a copy of every request received so far.
func (ms *mockServer) requests() [][]string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([][]string, len(ms.received))
	copy(out, ms.received)
	return out
}

func (ms *mockServer) close() {
	ms.listener.Close()
	ms.mu.Lock()
	for _, c := range ms.conns {
		c.Close()
	}
	ms.mu.Unlock()
}

func (ms *mockServer) acceptLoop() {
	for {
		conn, err := ms.listener.Accept()
		if err != nil {
			return
		}
		ms.mu.Lock()
		ms.conns = append(ms.conns, conn)
		ms.mu.Unlock()
		go ms.serve(conn)
	}
}

func (ms *mockServer) serve(conn net.Conn) {
	defer conn.Close()

	rd := resp.NewReader(bufio.NewReader(conn))
	for {
		v, _, err := rd.ReadValue()
		if err != nil {
			return
		}

		var args []string
		for _, elem := range v.Array() {
			args = append(args, elem.String())
		}

		ms.mu.Lock()
		ms.received = append(ms.received, args)
		ms.mu.Unlock()

		reply := ms.handler(args)
		if reply == "" {
			return
		}
		if _, err := conn.Write([]byte(reply)); err != nil {
			return
		}
	}
}

// defaultMockHandler implements a handful of commands against an in-memory
// map, enough to drive the REPL through every reply type.
func defaultMockHandler() mockHandler {
	var mu sync.Mutex
	store := map[string]string{}

	return func(args []string) string {
		if len(args) == 0 {
			return "-ERR empty request\r\n"
		}

		mu.Lock()
		defer mu.Unlock()

		switch strings.ToUpper(args[0]) {
		case "PING":
			return "+PONG\r\n"
		case "SET":
			if len(args) != 3 {
				return "-ERR wrong number of arguments for 'set' command\r\n"
			}
			store[args[1]] = args[2]
			return "+OK\r\n"
		case "GET":
			if len(args) != 2 {
				return "-ERR wrong number of arguments for 'get' command\r\n"
			}
			v, ok := store[args[1]]
			if !ok {
				return "$-1\r\n"
			}
			return marshalValue(resp.StringValue(v))
		case "INCR":
			return ":1\r\n"
		case "KEYS":
			values := make([]resp.Value, 0, len(store))
			for k := range store {
				values = append(values, resp.StringValue(k))
			}
			return marshalValue(resp.ArrayValue(values))
		case "LRANGE":
			return "*2\r\n$1\r\na\r\n$1\r\nb\r\n"
		case "EMPTY":
			return "*0\r\n"
		case "AUTH":
			if len(args) == 2 && args[1] == "secret" {
				return "+OK\r\n"
			}
			return "-ERR invalid password\r\n"
		case "GARBAGE":
			return "?what\r\n"
		case "HANGUP":
			return ""
		}
		return "-ERR unknown command '" + args[0] + "'\r\n"
	}
}

// marshalValue renders v as a RESP frame.
func marshalValue(v resp.Value) string {
	b, err := v.MarshalRESP()
	if err != nil {
		return "-ERR marshal: " + err.Error() + "\r\n"
	}
	return string(b)
}

// connectMockClient returns a client connected to ms.
func connectMockClient(t *testing.T, ms *mockServer) *respproto.Client {
	t.Helper()

	client := respproto.NewClient()
	if err := client.Connect(ms.addr()); err != nil {
		t.Fatalf("failed to connect to mock server: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}
