package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/agentconsole/internal/ctxlog"
	"github.com/vk/agentconsole/internal/protocol"
)

// rawBuffer bounds the generic frame channel. Inbound dispatch never blocks
// on a slow raw consumer; frames beyond the buffer are dropped with a log line.
const rawBuffer = 64

// Client owns exactly one outbound duplex connection. The zero value is not
// usable; construct with NewClient. A Client connects at most once: Failed
// and Closed are terminal states.
type Client struct {
	mu          sync.Mutex
	state       State
	sock        *socket.Socket
	subscribers []EventHandler

	raw    chan protocol.Frame
	logger *slog.Logger
}

// NewClient returns an idle Client.
func NewClient() *Client {
	return &Client{
		state:  StateIdle,
		raw:    make(chan protocol.Frame, rawBuffer),
		logger: slog.Default(),
	}
}

// State reports the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers a typed event handler. Subscribing after Connect is
// allowed; the handler sees only frames that arrive from then on.
func (c *Client) Subscribe(h EventHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, h)
}

// Raw returns the generic channel carrying every well-formed inbound frame,
// recognized or not, verbatim. Callers needing their own correlation (the
// one-shot exit-on-response flow) read here.
func (c *Client) Raw() <-chan protocol.Frame {
	return c.raw
}

// Connect establishes the socket, racing the connection-established signal
// against the timeout and the context. Exactly one outcome fires: nil and
// StateConnected, or an error and StateFailed.
func (c *Client) Connect(ctx context.Context, endpoint string, timeout time.Duration) error {
	logger := ctxlog.FromContext(ctx).With("endpoint", endpoint)

	c.mu.Lock()
	if c.state != StateIdle {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w (state %s)", ErrAlreadyConnected, state)
	}
	c.state = StateConnecting
	c.logger = logger
	c.mu.Unlock()

	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		c.setState(StateFailed)
		return fmt.Errorf("%w: invalid endpoint: %v", ErrConnectionFailed, err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	opts.SetReconnection(false)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)

	// Manager construction dials synchronously: an endpoint that accepts TCP
	// but never finishes the handshake would park it indefinitely. It runs on
	// its own goroutine so the select below bounds the whole handshake, not
	// just the event wait. The socket is handed back through sockChan so every
	// exit path can close it once it exists.
	connectChan := make(chan error, 2)
	sockChan := make(chan *socket.Socket, 1)
	go func() {
		manager := socket.NewManager(baseURL, opts)
		sock := manager.Socket("/", opts)

		sock.Once(types.EventName("connect"), func(...any) {
			logger.Info("Connected to remote runtime.", "sid", sock.Id())
			connectChan <- nil
		})
		sock.Once(types.EventName("connect_error"), func(errs ...any) {
			var cause error
			if len(errs) > 0 {
				cause, _ = errs[0].(error)
			}
			connectChan <- fmt.Errorf("%w: %v", ErrConnectionFailed, cause)
		})
		sock.On(types.EventName(protocol.SocketInboundEvent), c.onInbound)
		sock.On(types.EventName("disconnect"), func(...any) {
			// Peer closed the connection; mirror it locally. Disconnect()
			// already moved us to Closed when the close was ours.
			c.mu.Lock()
			if c.state == StateConnected {
				c.state = StateClosed
				logger.Info("Remote runtime closed the connection.")
			}
			c.mu.Unlock()
		})

		sockChan <- sock

		logger.Debug("Initiating connection...")
		sock.Connect()
	}()

	// abandon closes the socket whenever the stalled dial finally yields one.
	abandon := func() {
		go func() {
			sock := <-sockChan
			sock.Disconnect()
		}()
	}

	select {
	case err := <-connectChan:
		// The socket is handed over before Connect fires any event, so this
		// receive cannot block.
		sock := <-sockChan
		if err != nil {
			sock.Disconnect()
			c.setState(StateFailed)
			return err
		}
		c.mu.Lock()
		c.sock = sock
		c.state = StateConnected
		c.mu.Unlock()
		return nil
	case <-ctx.Done():
		abandon()
		c.setState(StateFailed)
		return fmt.Errorf("%w: %v", ErrConnectionFailed, ctx.Err())
	case <-time.After(timeout):
		abandon()
		c.setState(StateFailed)
		return fmt.Errorf("%w after %v", ErrConnectionTimeout, timeout)
	}
}

// SendCommand serializes {command: kind, ...params} and writes it to the
// socket. It fails synchronously with ErrNotConnected before any I/O when the
// client is not connected. Sends are fire-and-forget: no reply is awaited and
// none is correlated.
func (c *Client) SendCommand(ctx context.Context, kind string, params map[string]any) error {
	c.mu.Lock()
	if c.state != StateConnected {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("%w (state %s)", ErrNotConnected, state)
	}
	sock := c.sock
	c.mu.Unlock()

	frame := make(map[string]any, len(params)+1)
	for k, v := range params {
		frame[k] = v
	}
	frame["command"] = kind

	ctxlog.FromContext(ctx).Debug("Sending command.", "command", kind)
	sock.Emit(protocol.SocketOutboundEvent, frame)
	return nil
}

// Disconnect closes the connection and moves the client to StateClosed. It is
// idempotent and safe to call when never connected or already closed.
func (c *Client) Disconnect() {
	c.mu.Lock()
	sock := c.sock
	alreadyClosed := c.state == StateClosed
	c.state = StateClosed
	c.sock = nil
	c.mu.Unlock()

	if sock != nil && !alreadyClosed {
		sock.Disconnect()
		c.logger.Debug("Disconnected from remote runtime.")
	}
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
