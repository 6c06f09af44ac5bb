// Package transport owns the single duplex socket to the remote agent
// runtime. One Client frames outbound commands, decodes inbound frames, and
// fans them out to typed subscribers plus one generic raw channel. Sends are
// fire-and-forget: the protocol carries no correlation identifiers, so a
// reply can never be matched to a specific request. That limitation is the
// runtime's, not this package's; the Client hides the socket behind its own
// interface so a correlation layer could be added later without touching
// callers.
package transport

import "errors"

// State is the connection lifecycle of the one socket a Client owns.
type State int

const (
	// StateIdle is the initial state; no connection attempt has been made.
	StateIdle State = iota
	// StateConnecting covers the window between Connect being called and the
	// handshake resolving.
	StateConnecting
	// StateConnected means the socket is up and commands may be sent.
	StateConnected
	// StateFailed is terminal: the handshake failed or timed out. There is no
	// automatic reconnection.
	StateFailed
	// StateClosed is terminal: the connection was closed, by us or the peer.
	StateClosed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

var (
	// ErrConnectionTimeout reports that the handshake timer expired before the
	// connection was established.
	ErrConnectionTimeout = errors.New("connection handshake timed out")

	// ErrConnectionFailed reports a transport-level failure during the handshake.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNotConnected reports a send attempted while the client is not in
	// StateConnected. It is returned synchronously, before any I/O.
	ErrNotConnected = errors.New("not connected to the remote runtime")

	// ErrAlreadyConnected reports a Connect call on a client that already left
	// StateIdle. Failed and Closed are terminal; callers build a new Client.
	ErrAlreadyConnected = errors.New("client has already attempted a connection")
)
