package transport

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCommand_BeforeConnect(t *testing.T) {
	t.Parallel()

	client := NewClient()

	// --- Act ---
	start := time.Now()
	err := client.SendCommand(context.Background(), "query", map[string]any{"query": "hi"})

	// --- Assert ---
	require.ErrorIs(t, err, ErrNotConnected, "send before connect must fail synchronously")
	assert.Less(t, time.Since(start), 100*time.Millisecond, "no network attempt may be observable")
	assert.Equal(t, StateIdle, client.State())
}

func TestConnect_Timeout(t *testing.T) {
	t.Parallel()

	// An endpoint that accepts TCP but never completes a handshake.
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	client := NewClient()

	// --- Act ---
	start := time.Now()
	err = client.Connect(context.Background(), "http://"+listener.Addr().String(), 50*time.Millisecond)
	elapsed := time.Since(start)

	// --- Assert ---
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnectionTimeout) || errors.Is(err, ErrConnectionFailed),
		"handshake against a mute endpoint must resolve to timeout or failure, got %v", err)
	// The 50ms deadline must bound the whole handshake, dial included; the
	// slack above it is scheduler headroom only.
	assert.Less(t, elapsed, 500*time.Millisecond, "the timeout must bound the wait")
	assert.Equal(t, StateFailed, client.State())
}

func TestConnect_InvalidEndpoint(t *testing.T) {
	t.Parallel()

	client := NewClient()
	err := client.Connect(context.Background(), "://not-a-url", time.Second)

	require.ErrorIs(t, err, ErrConnectionFailed)
	assert.Equal(t, StateFailed, client.State())
}

func TestConnect_OnlyOnce(t *testing.T) {
	t.Parallel()

	client := NewClient()
	_ = client.Connect(context.Background(), "://not-a-url", time.Second)

	// Failed is terminal; a second attempt is refused outright.
	err := client.Connect(context.Background(), "http://127.0.0.1:1", time.Second)
	require.ErrorIs(t, err, ErrAlreadyConnected)
}

func TestDisconnect_Idempotent(t *testing.T) {
	t.Parallel()

	client := NewClient()

	// Never connected: both calls must be safe.
	require.NotPanics(t, func() {
		client.Disconnect()
		client.Disconnect()
	})
	assert.Equal(t, StateClosed, client.State())

	// And sending afterwards still reports NotConnected.
	err := client.SendCommand(context.Background(), "query", nil)
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "connected", StateConnected.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "closed", StateClosed.String())
}
