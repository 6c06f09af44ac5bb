package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/agentconsole/internal/protocol"
)

// recordingHandler captures every typed event it receives.
type recordingHandler struct {
	connected    []protocol.ServerInfo
	disconnected []string
	toolLists    map[string][]protocol.ToolInfo
	serverLists  []map[string]protocol.ServerInfo
	responses    []string
	thinking     []string
	statuses     []map[string]protocol.ServerInfo
	errors       []string
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{toolLists: make(map[string][]protocol.ToolInfo)}
}

func (h *recordingHandler) OnServerConnected(s protocol.ServerInfo) {
	h.connected = append(h.connected, s)
}

func (h *recordingHandler) OnServerDisconnected(id string) {
	h.disconnected = append(h.disconnected, id)
}
func (h *recordingHandler) OnToolsList(id string, tools []protocol.ToolInfo) {
	h.toolLists[id] = tools
}
func (h *recordingHandler) OnServersList(s map[string]protocol.ServerInfo) {
	h.serverLists = append(h.serverLists, s)
}
func (h *recordingHandler) OnQueryResponse(_, response string) {
	h.responses = append(h.responses, response)
}

func (h *recordingHandler) OnThinking(msg string) { h.thinking = append(h.thinking, msg) }
func (h *recordingHandler) OnStatus(s map[string]protocol.ServerInfo) {
	h.statuses = append(h.statuses, s)
}
func (h *recordingHandler) OnRemoteError(msg string) { h.errors = append(h.errors, msg) }

func (h *recordingHandler) total() int {
	return len(h.connected) + len(h.disconnected) + len(h.toolLists) +
		len(h.serverLists) + len(h.responses) + len(h.thinking) +
		len(h.statuses) + len(h.errors)
}

func TestOnInbound_RoutesRecognizedTypes(t *testing.T) {
	t.Parallel()

	client := NewClient()
	handler := newRecordingHandler()
	client.Subscribe(handler)

	client.onInbound(map[string]any{
		"type":   "server_connected",
		"server": map[string]any{"id": "github", "status": "up", "tools_count": float64(3)},
	})
	client.onInbound(map[string]any{"type": "server_disconnected", "server_id": "github"})
	client.onInbound(map[string]any{
		"type":      "tools_list",
		"server_id": "github",
		"tools":     []any{map[string]any{"name": "search", "description": "code search"}},
	})
	client.onInbound(map[string]any{
		"type":    "servers_list",
		"servers": map[string]any{"fs": map[string]any{"status": "up", "tools_count": float64(2)}},
	})
	client.onInbound(map[string]any{"type": "query_response", "query": "q", "response": "the answer"})
	client.onInbound(map[string]any{"type": "thinking", "message": "working..."})
	client.onInbound(map[string]any{"type": "status"})
	client.onInbound(map[string]any{"type": "error", "error": "boom"})

	require.Len(t, handler.connected, 1)
	assert.Equal(t, protocol.ServerInfo{ID: "github", Status: "up", ToolsCount: 3}, handler.connected[0])
	assert.Equal(t, []string{"github"}, handler.disconnected)
	require.Contains(t, handler.toolLists, "github")
	assert.Equal(t, "search", handler.toolLists["github"][0].Name)
	require.Len(t, handler.serverLists, 1)
	assert.Equal(t, "fs", handler.serverLists[0]["fs"].ID, "map key backfills a missing id field")
	assert.Equal(t, []string{"the answer"}, handler.responses)
	assert.Equal(t, []string{"working..."}, handler.thinking)
	require.Len(t, handler.statuses, 1)
	assert.Nil(t, handler.statuses[0], "status without servers carries nil")
	assert.Equal(t, []string{"boom"}, handler.errors)
}

func TestOnInbound_FrameWithoutTypeIsDropped(t *testing.T) {
	t.Parallel()

	client := NewClient()
	handler := newRecordingHandler()
	client.Subscribe(handler)

	// --- Act ---
	client.onInbound(map[string]any{"response": "orphan"})

	// --- Assert ---
	assert.Zero(t, handler.total(), "no handler in the dispatch table may be invoked")
	select {
	case frame := <-client.Raw():
		t.Fatalf("typeless frame must not reach the raw channel, got %v", frame)
	default:
	}
}

func TestOnInbound_MalformedPayloadIsDropped(t *testing.T) {
	t.Parallel()

	client := NewClient()
	handler := newRecordingHandler()
	client.Subscribe(handler)

	require.NotPanics(t, func() {
		client.onInbound()
		client.onInbound("just a string")
		client.onInbound(nil)
		client.onInbound([]any{"array"})
	})
	assert.Zero(t, handler.total())
}

func TestOnInbound_UnrecognizedTypeStillReachesRaw(t *testing.T) {
	t.Parallel()

	client := NewClient()
	handler := newRecordingHandler()
	client.Subscribe(handler)

	// --- Act ---
	client.onInbound(map[string]any{"type": "exotic_future_event", "data": "x"})

	// --- Assert ---
	assert.Zero(t, handler.total(), "unrecognized discriminants are ignored by typed dispatch")
	select {
	case frame := <-client.Raw():
		assert.Equal(t, "exotic_future_event", frame.Type())
	default:
		t.Fatal("every frame with a discriminant must be re-emitted on the raw channel")
	}
}

func TestOnInbound_RawChannelNeverBlocksDispatch(t *testing.T) {
	t.Parallel()

	client := NewClient()

	// Nobody drains Raw(); overflow frames are dropped, not deadlocked on.
	for i := 0; i < rawBuffer+16; i++ {
		client.onInbound(map[string]any{"type": "thinking", "message": "m"})
	}
}

// responseOnlyHandler embeds NopHandler to subscribe to a single event kind.
type responseOnlyHandler struct {
	NopHandler
	responses []string
}

func (h *responseOnlyHandler) OnQueryResponse(_, response string) {
	h.responses = append(h.responses, response)
}

func TestOnInbound_PartialHandlerViaNopBase(t *testing.T) {
	t.Parallel()

	client := NewClient()
	handler := &responseOnlyHandler{}
	client.Subscribe(handler)

	// --- Act ---
	client.onInbound(map[string]any{"type": "server_connected", "server": map[string]any{"id": "fs"}})
	client.onInbound(map[string]any{"type": "thinking", "message": "working..."})
	client.onInbound(map[string]any{"type": "query_response", "query": "q", "response": "the answer"})
	client.onInbound(map[string]any{"type": "error", "error": "boom"})

	// --- Assert ---
	assert.Equal(t, []string{"the answer"}, handler.responses,
		"only the overridden method may observe traffic; the embedded base absorbs the rest")
}
