package respproto

import (
	"bufio"
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client is a synchronous TCP client for a RESP server.
//
// Each call to Send writes one request frame and then blocks until the
// complete reply has been decoded; there is never more than one request in
// flight on the connection.
//
// Thread Safety:
// The client uses a mutex to protect its state and a second one to serialize
// requests, so concurrent Send calls queue rather than pipeline. Close may be
// called from another goroutine while a Send is blocked; the Send then fails
// with a ConnectionError.
type Client struct {
	mu     sync.Mutex
	sendMu sync.Mutex

	conn          net.Conn
	connectedAddr string
	isConnected   bool

	writer  *bufio.Writer
	decoder *Decoder

	requestCapacity int
	decoderOptions  DecoderOptions

	logger zerolog.Logger
}

// NewClient creates a new RESP client. Requests are limited to
// DefaultRequestCapacity bytes until SetRequestCapacity says otherwise.
func NewClient() *Client {
	return &Client{
		requestCapacity: DefaultRequestCapacity,
		logger:          zerolog.Nop(),
	}
}

// SetLogger sets the logger used for connection and request tracing.
func (c *Client) SetLogger(logger zerolog.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
}

// SetRequestCapacity sets the largest request frame, in bytes, that Send
// will write. Zero or less removes the limit.
func (c *Client) SetRequestCapacity(capacity int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestCapacity = capacity
}

// SetDecoderOptions sets the reply limits used for the next connection.
func (c *Client) SetDecoderOptions(opts DecoderOptions) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decoderOptions = opts
}

// IsConnected returns true if the client is currently connected.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isConnected
}

// ConnectedAddr returns the address of the current connection.
// Returns empty string if not connected.
func (c *Client) ConnectedAddr() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectedAddr
}

// Connect connects to a server at addr (host:port).
func (c *Client) Connect(addr string) error {
	return c.ConnectWithContext(context.Background(), addr)
}

// ConnectWithContext connects to a server with a context for cancellation.
// Dialing gives up after ConnectionTimeout.
func (c *Client) ConnectWithContext(ctx context.Context, addr string) error {
	c.mu.Lock()
	if c.isConnected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	connectCtx, cancel := context.WithTimeout(ctx, ConnectionTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(connectCtx, "tcp", addr)
	if err != nil {
		return NewConnectionError("failed to connect", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.attach(conn, addr)
	c.logger.Debug().Str("addr", addr).Msg("connected")
	return nil
}

// attach installs conn as the live connection. Callers hold c.mu.
func (c *Client) attach(conn net.Conn, addr string) {
	c.conn = conn
	c.connectedAddr = addr
	c.isConnected = true
	c.writer = bufio.NewWriter(conn)
	c.decoder = NewDecoderWithOptions(conn, c.decoderOptions)
}

// Close closes the connection. It is safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

func (c *Client) closeLocked() error {
	if !c.isConnected {
		return nil
	}
	c.isConnected = false

	var err error
	if c.conn != nil {
		err = c.conn.Close()
		c.conn = nil
	}
	c.logger.Debug().Str("addr", c.connectedAddr).Msg("disconnected")
	c.connectedAddr = ""
	c.writer = nil
	c.decoder = nil
	return err
}

// Send sends a command and waits for its reply with no deadline.
func (c *Client) Send(cmd Command) (Reply, error) {
	return c.SendWithContext(context.Background(), cmd)
}

// SendWithTimeout sends a command with a deadline covering both the write
// and the full reply.
func (c *Client) SendWithTimeout(cmd Command, timeout time.Duration) (Reply, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return c.SendWithContext(ctx, cmd)
}

// SendWithContext sends a command and blocks until its reply is decoded.
//
// If ctx carries a deadline it is applied to the connection. Cancelling ctx
// without a deadline does not interrupt a decode in progress.
//
// A server error reply is returned as a Reply with Type ReplyError, not as a
// Go error. Go errors are ErrNotConnected, ErrInvalidArgument,
// ErrCapacityExceeded, *ProtocolError or *ConnectionError. After a
// ConnectionError the client is closed.
func (c *Client) SendWithContext(ctx context.Context, cmd Command) (Reply, error) {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.mu.Lock()
	if !c.isConnected {
		c.mu.Unlock()
		return Reply{}, ErrNotConnected
	}
	conn := c.conn
	writer := c.writer
	decoder := c.decoder
	capacity := c.requestCapacity
	logger := c.logger
	c.mu.Unlock()

	frame, err := cmd.Encode(capacity)
	if err != nil {
		return Reply{}, err
	}

	deadline, _ := ctx.Deadline()
	if err := conn.SetDeadline(deadline); err != nil {
		return Reply{}, c.fail(conn, NewConnectionError("failed to set deadline", err))
	}

	logger.Debug().
		Str("command", cmd.Name()).
		Int("argc", len(cmd.Args)).
		Int("bytes", len(frame)).
		Msg("sending command")

	if _, err := writer.Write(frame); err != nil {
		return Reply{}, c.fail(conn, NewConnectionError("failed to send command", err))
	}
	if err := writer.Flush(); err != nil {
		return Reply{}, c.fail(conn, NewConnectionError("failed to send command", err))
	}

	reply, err := decoder.Decode()
	if err != nil {
		if IsConnectionError(err) {
			return Reply{}, c.fail(conn, err)
		}
		logger.Warn().Err(err).Str("command", cmd.Name()).Msg("malformed reply")
		return Reply{}, err
	}

	logger.Debug().
		Str("command", cmd.Name()).
		Stringer("type", reply.Type).
		Bool("nil", reply.Nil).
		Msg("received reply")
	return reply, nil
}

// fail tears down conn after an I/O error, unless it was already replaced
// or closed.
func (c *Client) fail(conn net.Conn, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn {
		c.logger.Error().Err(err).Str("addr", c.connectedAddr).Msg("connection lost")
		c.closeLocked()
	}
	return err
}

// Do sends a command built from args and waits for the reply.
func (c *Client) Do(args ...string) (Reply, error) {
	return c.Send(NewCommand(args...))
}

// Auth authenticates the connection with AUTH <password>.
//
// A +OK reply means success. An error reply is returned as *AuthError with
// the server's message. Any other reply is a ProtocolError of kind
// ErrKindUnexpectedResponse.
func (c *Client) Auth(password string) error {
	reply, err := c.Send(NewAuthCommand(password))
	if err != nil {
		return err
	}

	switch {
	case reply.IsOK():
		return nil
	case reply.IsError():
		return &AuthError{Message: reply.Text}
	default:
		return newUnexpectedResponseError(reply.Type.String() + " " + reply.String())
	}
}
