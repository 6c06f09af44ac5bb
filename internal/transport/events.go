package transport

import "github.com/vk/agentconsole/internal/protocol"

// EventHandler receives typed inbound events from the Client. One method per
// recognized frame type keeps subscriptions explicit: there are no
// string-keyed event names to mistype, and adding a frame type is a compile
// error for every subscriber until it decides what to do with it.
//
// Handlers are invoked from the socket's receive goroutine and must not block.
type EventHandler interface {
	// OnServerConnected fires when the runtime reports a tool server came up.
	OnServerConnected(server protocol.ServerInfo)
	// OnServerDisconnected fires when the runtime reports a tool server went away.
	OnServerDisconnected(serverID string)
	// OnToolsList delivers the tool inventory of one server.
	OnToolsList(serverID string, tools []protocol.ToolInfo)
	// OnServersList delivers the full id -> server snapshot.
	OnServersList(servers map[string]protocol.ServerInfo)
	// OnQueryResponse delivers the reply to some earlier query. The protocol
	// does not say which one.
	OnQueryResponse(query, response string)
	// OnThinking delivers a progress notice while the runtime works.
	OnThinking(message string)
	// OnStatus delivers a runtime status report, optionally with servers.
	OnStatus(servers map[string]protocol.ServerInfo)
	// OnRemoteError delivers an explicit error frame from the runtime.
	OnRemoteError(message string)
}

// NopHandler is an EventHandler that ignores everything. Embed it to
// subscribe to a subset of events.
type NopHandler struct{}

func (NopHandler) OnServerConnected(protocol.ServerInfo)        {}
func (NopHandler) OnServerDisconnected(string)                  {}
func (NopHandler) OnToolsList(string, []protocol.ToolInfo)      {}
func (NopHandler) OnServersList(map[string]protocol.ServerInfo) {}
func (NopHandler) OnQueryResponse(string, string)               {}
func (NopHandler) OnThinking(string)                            {}
func (NopHandler) OnStatus(map[string]protocol.ServerInfo)      {}
func (NopHandler) OnRemoteError(string)                         {}
